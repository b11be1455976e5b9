// Command tagsight is the operator CLI for the scanning terminal. It
// talks to the tagsightd daemon over a Unix socket.
package main

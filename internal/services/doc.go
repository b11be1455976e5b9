// Package services defines the shared error taxonomy and context
// annotations used across TagSight subsystems.
package services

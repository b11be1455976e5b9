// Package scanner feeds decoded barcode input into the scan workflow.
//
// A bounded queue decouples the input source (IPC submissions today, a
// HID reader later) from backend lookups, and a udev hotplug monitor
// tracks the physical scanner so operators learn immediately when it
// drops off the USB bus.
package scanner

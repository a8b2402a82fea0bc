package notify

import (
	"os/exec"
	"strconv"
	"time"

	"github.com/godbus/dbus/v5"
)

// Urgency levels for notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Notifier handles sending desktop notifications
type Notifier struct {
	enabled bool
}

// NewNotifier creates a new notifier
func NewNotifier() *Notifier {
	return &Notifier{
		enabled: true,
	}
}

// SetEnabled enables or disables notifications
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

// Send delivers a desktop notification. It talks to
// org.freedesktop.Notifications on the session bus and falls back to
// notify-send when no bus is reachable.
func (n *Notifier) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}

	if err := n.sendDBus(notification); err == nil {
		return nil
	}

	return n.sendExec(notification)
}

// sendDBus delivers via the freedesktop Notifications interface.
func (n *Notifier) sendDBus(notification Notification) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(byte(notification.Urgency)),
	}

	timeout := int32(-1)
	if notification.Timeout > 0 {
		timeout = int32(notification.Timeout.Milliseconds())
	}

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		"horas", uint32(0), notification.Icon,
		notification.Title, notification.Body,
		[]string{}, hints, timeout)
	return call.Err
}

// sendExec delivers through notify-send for environments without a
// session bus.
func (n *Notifier) sendExec(notification Notification) error {
	args := []string{}

	switch notification.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}

	if notification.Icon != "" {
		args = append(args, "-i", notification.Icon)
	}

	args = append(args, "-a", "horas")

	args = append(args, notification.Title)
	if notification.Body != "" {
		args = append(args, notification.Body)
	}

	cmd := exec.Command("notify-send", args...)
	return cmd.Run()
}

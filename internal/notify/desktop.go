package notify

import (
	"fmt"
	"os"
	"strings"
)

// Darwin uses osascript for banners and afplay for system sounds.
type Darwin struct {
	run   Runner
	sound bool
}

var darwinSounds = map[Sound]string{
	SoundStart:    "/System/Library/Sounds/Tink.aiff",
	SoundComplete: "/System/Library/Sounds/Glass.aiff",
	SoundBreak:    "/System/Library/Sounds/Bottle.aiff",
}

func (d *Darwin) Notify(title, message string) error {
	script := fmt.Sprintf("display notification %s with title %s", appleScriptQuote(message), appleScriptQuote(title))
	return d.run.Start("osascript", "-e", script)
}

func (d *Darwin) PlaySound(kind Sound) error {
	if !d.sound {
		return nil
	}
	return d.run.Start("afplay", soundFile(darwinSounds, kind))
}

func appleScriptQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// Linux uses notify-send and plays freedesktop sounds with paplay.
type Linux struct {
	run   Runner
	sound bool
}

var linuxSounds = map[Sound]string{
	SoundStart:    "/usr/share/sounds/freedesktop/stereo/service-login.oga",
	SoundComplete: "/usr/share/sounds/freedesktop/stereo/complete.oga",
	SoundBreak:    "/usr/share/sounds/freedesktop/stereo/bell.oga",
}

func (l *Linux) Notify(title, message string) error {
	return l.run.Start("notify-send", "--app-name=pomo", title, message)
}

func (l *Linux) PlaySound(kind Sound) error {
	if !l.sound {
		return nil
	}
	file := soundFile(linuxSounds, kind)
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("sound file: %w", err)
	}
	return l.run.Start("paplay", file)
}

// Windows shows a toast through PowerShell and beeps via the console API.
type Windows struct {
	run   Runner
	sound bool
}

const toastScript = `[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] > $null
$Template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02)
$Texts = $Template.GetElementsByTagName("text")
$Texts.Item(0).AppendChild($Template.CreateTextNode(%s)) > $null
$Texts.Item(1).AppendChild($Template.CreateTextNode(%s)) > $null
$Toast = [Windows.UI.Notifications.ToastNotification]::new($Template)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier("pomo").Show($Toast)`

func (w *Windows) Notify(title, message string) error {
	script := fmt.Sprintf(toastScript, powerShellQuote(title), powerShellQuote(message))
	return w.run.Start("powershell", "-NoProfile", "-Command", script)
}

func (w *Windows) PlaySound(kind Sound) error {
	if !w.sound {
		return nil
	}
	freq := 800
	if kind == SoundComplete {
		freq = 1000
	}
	return w.run.Start("powershell", "-NoProfile", "-Command", fmt.Sprintf("[console]::beep(%d,200)", freq))
}

func powerShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func soundFile(files map[Sound]string, kind Sound) string {
	if f, ok := files[kind]; ok {
		return f
	}
	return files[SoundComplete]
}

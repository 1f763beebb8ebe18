package notify

import (
	"fmt"
	"strings"
)

func escapeForPowerShell(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '\'':
			b.WriteString("''")
		case '`', '$':
			b.WriteByte('`')
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// toastScript builds the PowerShell toast. With an icon it switches to the
// ToastImageAndText02 template and points its image at the icon file.
func toastScript(n Notification) string {
	template := "ToastText02"
	image := ""
	if n.Icon != "" {
		template = "ToastImageAndText02"
		image = fmt.Sprintf(`
$image = $template.GetElementsByTagName('image')
$image.Item(0).Attributes.GetNamedItem('src').NodeValue = '%s'`, escapeForPowerShell(toFileURI(n.Icon)))
	}
	return fmt.Sprintf(`
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::%s)%s
$text = $template.GetElementsByTagName('text')
$text.Item(0).AppendChild($template.CreateTextNode('%s')) | Out-Null
$text.Item(1).AppendChild($template.CreateTextNode('%s')) | Out-Null
$toast = [Windows.UI.Notifications.ToastNotification]::new($template)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('standupclock').Show($toast)
`, template, image, escapeForPowerShell(n.Title), escapeForPowerShell(n.Body))
}

func toFileURI(path string) string {
	return "file:///" + strings.ReplaceAll(path, `\`, "/")
}

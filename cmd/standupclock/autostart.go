package main

import (
	"errors"
	"fmt"
	"html"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
)

const launchAgentLabel = "com.standupclock.watch"

var removeAutostart bool

var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Run `standupclock watch` at login (macOS)",
	Long: `autostart installs a LaunchAgent that starts "standupclock watch --quiet"
when you log in, so the reminder is sent even without the dashboard open.
Use --remove to uninstall it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if runtime.GOOS != "darwin" {
			return fmt.Errorf("autostart is only supported on macOS, add `standupclock watch --quiet` to your session startup instead")
		}
		usr, err := user.Current()
		if err != nil {
			return fmt.Errorf("looking up current user: %w", err)
		}
		agentsDir := filepath.Join(usr.HomeDir, "Library", "LaunchAgents")
		plistPath := filepath.Join(agentsDir, launchAgentLabel+".plist")
		domain := "gui/" + usr.Uid

		if removeAutostart {
			_ = exec.Command("launchctl", "bootout", domain+"/"+launchAgentLabel).Run()
			if err := os.Remove(plistPath); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("removing LaunchAgent: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed LaunchAgent:", plistPath)
			return nil
		}

		execPath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("locating executable: %w", err)
		}
		if err := os.MkdirAll(agentsDir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", agentsDir, err)
		}
		args = []string{execPath, "watch", "--quiet"}
		if configPath != "" {
			args = append(args, "--config", configPath)
		}
		plist := launchAgentPlist(launchAgentLabel, args,
			filepath.Join(agentsDir, launchAgentLabel+".out.log"),
			filepath.Join(agentsDir, launchAgentLabel+".err.log"))
		if err := os.WriteFile(plistPath, []byte(plist), 0o644); err != nil {
			return fmt.Errorf("writing LaunchAgent: %w", err)
		}

		if err := exec.Command("launchctl", "bootstrap", domain, plistPath).Run(); err != nil {
			_ = exec.Command("launchctl", "load", "-w", plistPath).Run()
		}
		_ = exec.Command("launchctl", "enable", domain+"/"+launchAgentLabel).Run()
		fmt.Fprintln(cmd.OutOrStdout(), "Added to login (LaunchAgents):", plistPath)
		return nil
	},
}

func init() {
	autostartCmd.Flags().BoolVar(&removeAutostart, "remove", false, "uninstall the LaunchAgent")
}

func launchAgentPlist(label string, args []string, outLog, errLog string) string {
	programArgs := ""
	for _, a := range args {
		programArgs += "<string>" + html.EscapeString(a) + "</string>"
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0"><dict>
  <key>Label</key><string>%s</string>
  <key>ProgramArguments</key><array>%s</array>
  <key>RunAtLoad</key><true/>
  <key>KeepAlive</key><true/>
  <key>StandardOutPath</key><string>%s</string>
  <key>StandardErrorPath</key><string>%s</string>
</dict></plist>
`, html.EscapeString(label), programArgs, html.EscapeString(outLog), html.EscapeString(errLog))
}

package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
	"github.com/steadyplay/steadyplay/color"
	"github.com/steadyplay/steadyplay/icon"
	"github.com/steadyplay/steadyplay/key"
	"github.com/steadyplay/steadyplay/style"
)

// CheckDependencies exits when the configured player binary is not installed.
func CheckDependencies() {
	binary := viper.GetString(key.PlayerBinary)
	if binary == "" {
		binary = "mpv"
	}

	if _, err := exec.LookPath(binary); err != nil {
		printMissingDependencyError(binary)
		os.Exit(1)
	}
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch {
	case dep != "mpv":
	case runtime.GOOS == "darwin":
		installCmd = "brew install mpv"
	case runtime.GOOS == "linux":
		installCmd = "sudo apt install mpv"
	case runtime.GOOS == "windows":
		installCmd = "scoop install mpv"
	}

	title := style.New().Bold(true).Foreground(color.HiRed).Render(fmt.Sprintf("%s Player not found", icon.Get(icon.Fail)))
	body := fmt.Sprintf("%s was not found in your PATH. Set %s to point at an mpv executable.", style.Fg(color.Yellow)(dep), style.Fg(color.Purple)(key.PlayerBinary))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(color.HiPurple).Bold(true).Render(installCmd))
	}

	box := style.Box(color.HiRed)
	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}

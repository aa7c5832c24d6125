package version

import (
	"context"
	"fmt"
	"time"

	"github.com/steadyplay/steadyplay/color"
	"github.com/steadyplay/steadyplay/constant"
	"github.com/steadyplay/steadyplay/icon"
	"github.com/steadyplay/steadyplay/key"
	"github.com/steadyplay/steadyplay/log"
	"github.com/steadyplay/steadyplay/style"
	"github.com/steadyplay/steadyplay/util"
	"github.com/spf13/viper"
)

// Notify prints a notice when a newer release exists. Failed checks stay
// silent.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking for a new version...", icon.Get(icon.Progress)))
	version, err := Latest(ctx)
	erase()
	if err != nil {
		log.Debugf("version check: %v", err)
		return
	}

	if comp, err := Compare(version, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s steadyplay %s is out %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(version),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/steadyplay/steadyplay/releases/tag/v"+version),
	)
}

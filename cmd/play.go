package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/steadyplay/steadyplay/color"
	"github.com/steadyplay/steadyplay/config"
	"github.com/steadyplay/steadyplay/event"
	"github.com/steadyplay/steadyplay/history"
	"github.com/steadyplay/steadyplay/icon"
	"github.com/steadyplay/steadyplay/inline"
	"github.com/steadyplay/steadyplay/key"
	"github.com/steadyplay/steadyplay/log"
	"github.com/steadyplay/steadyplay/loop"
	"github.com/steadyplay/steadyplay/platform"
	"github.com/steadyplay/steadyplay/player"
	"github.com/steadyplay/steadyplay/provider"
	"github.com/steadyplay/steadyplay/query"
	"github.com/steadyplay/steadyplay/resolver"
	"github.com/steadyplay/steadyplay/source"
	"github.com/steadyplay/steadyplay/style"
	"github.com/steadyplay/steadyplay/tui"
	"github.com/steadyplay/steadyplay/util"
)

type playOptions struct {
	Target        string
	Continue      bool
	Quality       string
	SelectQuality bool
	Start         mo.Option[float64]
	Json          bool
	Exit          bool
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().BoolP("continue", "c", false, "Resume from the last recorded position, or the most recent target when none is given")
	playCmd.Flags().StringP("quality", "q", "", "Preferred quality label, matched fuzzily against the available levels")
	playCmd.Flags().BoolP("select-quality", "s", false, "Choose the quality level interactively")
	playCmd.Flags().Float64P("start", "t", 0, "Position in seconds to start from")
	playCmd.Flags().BoolP("json", "j", false, "Print notifications as JSON lines instead of showing the watch view")
	playCmd.Flags().BoolP("exit", "e", false, "Quit once playback completes")

	playCmd.MarkFlagsMutuallyExclusive("continue", "start")
	playCmd.MarkFlagsMutuallyExclusive("quality", "select-quality")
	playCmd.MarkFlagsMutuallyExclusive("json", "select-quality")
}

var playCmd = &cobra.Command{
	Use:   "play [target]",
	Short: "Play a media target",
	Long: `Resolve a target into quality levels and play it through mpv.
A target may be a media URL, an HLS playlist, an item file or anything a custom resolver understands.`,
	Args: cobra.MaximumNArgs(1),
	Example: "  steadyplay play https://example.com/live/master.m3u8\n" +
		"  steadyplay play -q 720 movie.yaml\n" +
		"  steadyplay play --json --exit ./clip.mp4",
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 || !viper.GetBool(key.SearchShowQuerySuggestions) {
			return nil, cobra.ShellCompDirectiveDefault
		}
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveDefault
	},
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		options := &playOptions{
			Continue:      lo.Must(cmd.Flags().GetBool("continue")),
			Quality:       lo.Must(cmd.Flags().GetString("quality")),
			SelectQuality: lo.Must(cmd.Flags().GetBool("select-quality")),
			Json:          lo.Must(cmd.Flags().GetBool("json")),
			Exit:          lo.Must(cmd.Flags().GetBool("exit")),
		}
		if len(args) > 0 {
			options.Target = args[0]
		}
		if cmd.Flags().Changed("start") {
			options.Start = mo.Some(lo.Must(cmd.Flags().GetFloat64("start")))
		}

		handleErr(play(cmd.Context(), options))
	},
}

// tracking is the last known playback progress. Written on the loop
// goroutine, read once the loop has been drained.
type tracking struct {
	position  float64
	duration  float64
	quality   string
	completed bool
}

func (t *tracking) watch(p *provider.Provider) {
	p.On(event.Time, func(e event.Event) {
		data := e.Data.(event.TimeData)
		t.position = data.Position
		t.duration = data.Duration
	})

	onLevels := func(e event.Event) {
		data := e.Data.(event.LevelsData)
		if data.CurrentQuality >= 0 && data.CurrentQuality < len(data.Levels) {
			t.quality = data.Levels[data.CurrentQuality].Label
		}
	}
	p.On(event.Levels, onLevels)
	p.On(event.LevelsChanged, onLevels)

	p.On(event.Complete, func(event.Event) {
		t.completed = true
	})
}

func play(ctx context.Context, options *playOptions) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	target, last, err := playTarget(options)
	if err != nil {
		return err
	}

	r, err := resolverFor(target, last)
	if err != nil {
		return err
	}

	res, err := r.Create()
	if err != nil {
		return fmt.Errorf("create resolver %s: %w", r.Name, err)
	}
	if closer, ok := res.(io.Closer); ok {
		defer util.Ignore(closer.Close)
	}

	erase := func() {}
	if !options.Json {
		erase = util.PrintErasable(fmt.Sprintf("%s Resolving %s...", icon.Get(icon.Progress), style.Fg(color.Yellow)(target)))
	}
	item, err := res.Resolve(ctx, target)
	erase()
	if err != nil {
		return fmt.Errorf("resolve %s: %w", target, err)
	}

	switch {
	case options.Start.IsPresent():
		item.StartTime = options.Start
	case options.Continue:
		if position, ok := history.Position(target).Get(); ok {
			item.StartTime = mo.Some(position)
		}
	}

	fallback := viper.GetString(key.ProviderQualityLabel)
	if last.IsPresent() && last.MustGet().Quality != "" {
		fallback = last.MustGet().Quality
	}
	label, err := preferredQuality(item, options, fallback)
	if err != nil {
		return err
	}

	profile := platform.Detect()
	if name := viper.GetString(key.PlatformProfile); name != "" {
		if profile, err = platform.Lookup(name); err != nil {
			return err
		}
	}

	track := &tracking{}
	if err := watch(ctx, target, item, profile, label, options, track); err != nil {
		return err
	}

	if viper.GetBool(key.HistorySave) {
		if err := remember(target, r.Name, item, track); err != nil {
			log.Warn(err)
		}
	}

	return query.Remember(target, 1)
}

// watch plays item until the user quits, mpv exits or, with Exit set,
// playback completes.
func watch(
	ctx context.Context,
	target string,
	item *source.Item,
	profile platform.Profile,
	label string,
	options *playOptions,
	track *tracking,
) error {
	l := loop.New(256)
	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()
	go func() {
		_ = l.Run(loopCtx)
	}()

	mpv := player.NewMPV(player.Options{
		Binary:            viper.GetString(key.PlayerBinary),
		ExtraArgs:         viper.GetStringSlice(key.PlayerExtraArgs),
		SocketWaitRetries: viper.GetInt(key.PlayerSocketWaitRetries),
	}, l.Post)
	mpv.HeadersFor = headersFor(item)
	mpv.SetTitle(lo.Ternary(item.Title != "", item.Title, target))

	if err := mpv.Start(ctx); err != nil {
		return fmt.Errorf("start player: %w", err)
	}

	completed := make(chan struct{})
	var completeOnce sync.Once

	var p *provider.Provider
	var feed *tui.Feed
	if !options.Json {
		feed = tui.NewFeed()
	}

	err := l.Call(ctx, func() error {
		p = provider.New(mpv, l, provider.Options{
			Name:         viper.GetString(key.ProviderName),
			QualityLabel: label,
			StallDelay:   config.StallDelay(),
			Platform:     profile,
			OnQualityLabel: func(label string) {
				if !viper.GetBool(key.ProviderPersistQuality) {
					return
				}
				if err := config.Persist(key.ProviderQualityLabel, label); err != nil {
					log.Warnf("persist quality %q: %v", label, err)
				}
			},
		})

		track.watch(p)
		p.On(event.Complete, func(event.Event) {
			completeOnce.Do(func() { close(completed) })
		})

		if feed != nil {
			p.OnAll(feed.Handle)
		} else {
			printer := inline.NewPrinter(os.Stdout)
			p.OnAll(printer.Handle)
		}

		if err := p.Load(item); err != nil {
			return err
		}
		return p.Play()
	})

	if err == nil {
		if feed != nil {
			go func() {
				<-mpv.Wait()
				feed.Close()
			}()

			err = tui.Run(&tui.Options{
				Title: lo.Ternary(item.Title != "", item.Title, target),
				Feed:  feed,
				Do: func(f func(p *provider.Provider)) {
					if err := l.Post(func() { f(p) }); err != nil {
						log.Warn(err)
					}
				},
				ExitOnComplete: options.Exit,
			})
		} else {
			var untilComplete <-chan struct{}
			if options.Exit {
				untilComplete = completed
			}

			select {
			case <-ctx.Done():
			case <-mpv.Wait():
			case <-untilComplete:
			}
		}
	}

	teardown := l.Call(context.Background(), func() error {
		if p != nil {
			p.Destroy()
		}
		return mpv.Close()
	})
	if errors.Is(teardown, loop.ErrStopped) {
		teardown = nil
	}

	return errors.Join(err, teardown)
}

// playTarget returns the target to play and, when continuing, its history
// record.
func playTarget(options *playOptions) (string, mo.Option[*history.Record], error) {
	none := mo.None[*history.Record]()

	if options.Continue {
		records, err := history.Recent()
		if err != nil {
			return "", none, err
		}

		if options.Target == "" {
			if len(records) == 0 {
				return "", none, errors.New("nothing to continue: history is empty")
			}
			return records[0].Target, mo.Some(records[0]), nil
		}

		record, ok := lo.Find(records, func(r *history.Record) bool {
			return r.Target == options.Target
		})
		if ok {
			return options.Target, mo.Some(record), nil
		}
	}

	if options.Target != "" {
		return options.Target, none, nil
	}

	target, err := askTarget()
	return target, none, err
}

func askTarget() (string, error) {
	prompt := &survey.Input{
		Message: "Target:",
		Help:    "A media URL, an HLS playlist, an item file or a local path",
		Suggest: func(toComplete string) []string {
			if !viper.GetBool(key.SearchShowQuerySuggestions) {
				return nil
			}
			return query.SuggestMany(toComplete)
		},
	}

	var target string
	if err := survey.AskOne(prompt, &target, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return strings.TrimSpace(target), nil
}

// resolverFor picks the configured resolver, the one recorded in history
// or one detected from the target, in that order.
func resolverFor(target string, last mo.Option[*history.Record]) (*resolver.Resolver, error) {
	name := viper.GetString(key.ResolversDefault)
	if name == "" && last.IsPresent() {
		name = last.MustGet().Resolver
	}

	if name == "" {
		return resolver.Detect(target), nil
	}

	r, ok := resolver.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown resolver %q, see \"resolvers list\"", name)
	}
	return r, nil
}

func remember(target, resolverName string, item *source.Item, track *tracking) error {
	if track.completed {
		return history.Remove(target)
	}

	if track.position < viper.GetFloat64(key.HistoryMinPosition) {
		return nil
	}

	return history.Save(history.Record{
		Target:   target,
		Resolver: resolverName,
		Title:    item.Title,
		Quality:  track.quality,
		Position: track.position,
		Duration: track.duration,
	})
}

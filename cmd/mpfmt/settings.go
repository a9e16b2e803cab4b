package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dkoosis/mpfmt/internal/message"
	"github.com/dkoosis/mpfmt/internal/settings"
)

// watchLocation is the default consumer URL for `settings watch`.
const watchLocation = "https://docs.google.com/spreadsheets/mpfmt/watch"

func (a *app) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change whether the formatter is enabled",
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Print whether the formatter is enabled",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			store, err := a.openSettings()
			if err != nil {
				return exitWith(exitUsage, err)
			}
			fmt.Fprintln(a.stdout, settings.Status(store.Enabled()))
			return nil
		},
	}

	set := func(use, short string, enabled bool) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return a.change(func(s *settings.Store) (bool, error) {
					return enabled, s.Set(enabled)
				})
			},
		}
	}

	toggle := &cobra.Command{
		Use:   "toggle",
		Short: "Flip the enabled switch",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.change((*settings.Store).Toggle)
		},
	}

	var location string
	watch := &cobra.Command{
		Use:   "watch",
		Short: "Print a toggled message whenever the switch changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openSettings()
			if err != nil {
				return exitWith(exitUsage, err)
			}
			unsubscribe := store.Subscribe(settings.Consumer{URL: location, Fn: a.printMessage})
			defer unsubscribe()
			if err := store.Watch(cmd.Context()); err != nil {
				return exitWith(exitUsage, err)
			}
			return nil
		},
	}
	watch.Flags().StringVar(&location, "location", watchLocation, "Consumer URL matched against host_pattern")

	cmd.AddCommand(
		status,
		set("enable", "Enable the formatter", true),
		set("disable", "Disable the formatter", false),
		toggle,
		watch,
	)
	return cmd
}

// change applies fn to the store and prints the confirmation line.
func (a *app) change(fn func(*settings.Store) (bool, error)) error {
	store, err := a.openSettings()
	if err != nil {
		return exitWith(exitUsage, err)
	}
	enabled, err := fn(store)
	if err != nil {
		a.log.Error("saving settings", zap.Error(err))
		return exitWith(exitUsage, err)
	}
	fmt.Fprintln(a.stdout, settings.Confirmation(enabled))
	return nil
}

func (a *app) printMessage(m message.Toggled) error {
	data, err := message.Encode(m)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, string(data))
	return err
}

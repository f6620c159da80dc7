package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"lora-telemetry/pkg/config"
	"lora-telemetry/pkg/telemetry"
	"lora-telemetry/pkg/utils"
)

// RunDashboard renders a full-screen live view of the telemetry snapshot,
// refreshed at the configured interval. Press q or Esc to quit.
func RunDashboard(ctx context.Context, cancel context.CancelFunc, reader telemetry.TelemetryReader, cfg *config.Config) error {
	app := tview.NewApplication()

	view := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	view.SetBorder(true).
		SetTitle(" LoRa Range Telemetry ").
		SetTitleAlign(tview.AlignLeft)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'q' || event.Key() == tcell.KeyEscape {
			app.Stop()
			return nil
		}
		return event
	})

	refresh := time.Duration(cfg.Receiver.DisplayRefreshMs) * time.Millisecond
	go func() {
		ticker := time.NewTicker(refresh)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				app.Stop()
				return
			case <-ticker.C:
				snapshot := reader.Snapshot()
				app.QueueUpdateDraw(func() {
					view.SetText(renderSnapshot(snapshot))
				})
			}
		}
	}()

	defer cancel()
	return app.SetRoot(view, true).Run()
}

func renderSnapshot(s telemetry.Snapshot) string {
	var b strings.Builder

	link := "[red]DOWN[-]"
	if s.LinkConnected {
		link = "[green]UP[-]"
	}
	fmt.Fprintf(&b, " Link: %s   Uptime: %s   Sessions: %d\n\n",
		link, utils.FormatUptime(s.UptimeSeconds), s.Sessions)

	fmt.Fprintf(&b, " Distance:  [yellow]%.2f m[-]\n", s.Distance)
	fmt.Fprintf(&b, " Last seq:  %d\n", s.LastSeq)
	fmt.Fprintf(&b, " Received:  [green]%s[-]\n", utils.FormatNumber(s.Received))
	fmt.Fprintf(&b, " Lost:      [red]%s[-]\n", utils.FormatNumber(s.Lost))
	fmt.Fprintf(&b, " Loss rate: %.2f%%   Rate: %.1f pkt/s\n\n", s.LossRatePercent, s.PacketsPerSecond)

	fmt.Fprintf(&b, " RSSI: %.1f dBm   SNR: %.1f dB\n\n", s.RSSI, s.SNR)

	if s.ErrorsTotal > 0 {
		fmt.Fprintf(&b, " Errors: [red]%d[-]\n", s.ErrorsTotal)
		for _, cc := range utils.SortErrorContextsByCount(s.ErrorsByContext) {
			fmt.Fprintf(&b, "   %-20s %d\n", cc.Context, cc.Count)
		}
		if len(s.RecentErrors) > 0 {
			fmt.Fprintf(&b, "\n Recent:\n")
			for i, msg := range s.RecentErrors {
				if i >= 5 {
					break
				}
				fmt.Fprintf(&b, "   [gray]%s[-]\n", tview.Escape(msg))
			}
		}
	}

	b.WriteString("\n [gray]q to quit[-]")
	return b.String()
}

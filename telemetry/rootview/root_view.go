// Package rootview assembles the views under telemetry/statviews into
// the single page served by telemetry.Server, the way the teacher's
// server/root_view assembled cell_views under server/server.go.
package rootview

import (
	"context"
	"html/template"
	"log"
	"time"

	"github.com/niceyeti/lgp/telemetry/fastview"
	"github.com/niceyeti/lgp/telemetry/statviews"

	channerics "github.com/niceyeti/channerics/channels"
)

// RootView is the main page's index.html: the container for all view
// components and the wiring of their update channels.
type RootView struct {
	views   []fastview.ViewComponent
	updates <-chan []fastview.EleUpdate
}

// NewRootView builds the page and the views it contains. There is only
// one view today (fitness history), but it is still built through
// fastview.ViewBuilder so adding a second view (e.g. a per-generation
// instruction-histogram) later is a WithView call, not a rewrite.
func NewRootView(
	ctx context.Context,
	statUpdates <-chan statviews.Stat,
) *RootView {
	views, err := fastview.NewViewBuilder[statviews.Stat, statviews.Stat]().
		WithContext(ctx).
		WithModel(statUpdates, func(s statviews.Stat) statviews.Stat { return s }).
		WithView(func(
			done <-chan struct{},
			stats <-chan statviews.Stat) fastview.ViewComponent {
			return statviews.NewFitnessHistory(done, stats)
		}).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	updates := fanIn(ctx.Done(), views)

	return &RootView{
		views:   views,
		updates: updates,
	}
}

// Updates returns the main ele-update channel for all the views.
func (rv *RootView) Updates() <-chan []fastview.EleUpdate {
	return rv.updates
}

// Parse builds the main page's template, including the websocket
// bootstrap code shared by every view.
func (rv *RootView) Parse(
	parent *template.Template,
) (name string, err error) {
	rt := parent.Funcs(
		template.FuncMap{
			"add":  func(i, j int) int { return i + j },
			"sub":  func(i, j int) int { return i - j },
			"mult": func(i, j int) int { return i * j },
			"div":  func(i, j int) int { return i / j },
		})

	viewTemplates := []string{}
	for _, vc := range rv.views {
		tname, parseErr := vc.Parse(rt)
		if parseErr != nil {
			err = parseErr
			return
		}
		viewTemplates = append(viewTemplates, tname)
	}

	var bodySpec string
	for _, tname := range viewTemplates {
		bodySpec += (`{{ template "` + tname + `" . }}`)
	}

	name = "mainpage"
	indexTemplate := `
	{{ define "` + name + `" }}
	<!DOCTYPE html>
	<html>
		<head>
			<title>lgp</title>
			<link rel="icon" href="data:,">
			<script>
				const ws = new WebSocket("ws://" + window.location.host + "/ws");
				ws.onopen = function (event) {
					console.log("Web socket opened")
				};
				ws.onerror = function (event) {
					console.log('WebSocket error: ', event);
				};
				ws.onmessage = function (event) {
					items = JSON.parse(event.data)
					for (const update of items) {
						const ele = document.getElementById(update.EleId)
						for (const op of update.Ops) {
							if (op.Key === "textContent") {
								ele.textContent = op.Value;
							} else {
								ele.setAttribute(op.Key, op.Value)
							}
						}
					}
				}
			</script>
		</head>
		<body>
		` + bodySpec + `
		</body></html>
	{{ end }}
	`

	_, err = rt.Parse(indexTemplate)
	return
}

// fanIn aggregates the views' ele-update channels into a single channel
// and batches bursts within rate, overwriting stale per-element updates.
func fanIn(
	done <-chan struct{},
	views []fastview.ViewComponent,
) <-chan []fastview.EleUpdate {
	inputs := make([]<-chan []fastview.EleUpdate, len(views))
	for i, view := range views {
		inputs[i] = view.Updates()
	}
	return batchify(done, channerics.Merge(done, inputs...), time.Millisecond*20)
}

// batchify coalesces updates for the same element id within rate,
// keeping only the latest value sent within that window.
func batchify(
	done <-chan struct{},
	source <-chan []fastview.EleUpdate,
	rate time.Duration,
) <-chan []fastview.EleUpdate {
	output := make(chan []fastview.EleUpdate)

	go func() {
		defer close(output)

		data := map[string]fastview.EleUpdate{}
		last := time.Now()
		for updates := range channerics.OrDone(done, source) {
			for _, update := range updates {
				data[update.EleId] = update
			}

			if time.Since(last) > rate && len(updates) > 0 {
				select {
				case output <- slicedVals(data):
					data = map[string]fastview.EleUpdate{}
					last = time.Now()
				case <-done:
					return
				}
			}
		}
	}()

	return output
}

func slicedVals[K comparable, V any](mp map[K]V) (sliced []V) {
	for _, v := range mp {
		sliced = append(sliced, v)
	}
	return
}

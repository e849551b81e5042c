// Package fastview implements a builder pattern for simple server-side
// views: given an input data format, apply a transformation to a
// view-model, then multiplex that data to one or more views. models.go
// and view_builder.go stay generic over DataModel/ViewModel, unaware of
// anything evolution-specific — the statviews package built on top of
// it is what knows about generations and fitness. client.go is trimmed
// to a one-way pusher: the fitness dashboard has no inbound message
// type of its own, so there is no @client-command plumbing to build out.
package fastview

import "html/template"

// EleUpdate is an element identifier and a set of operations to apply to
// its attributes/content.
type EleUpdate struct {
	EleId string
	Ops   []Op
}

// Op is a key and value, e.g. an html attribute and its new value.
type Op struct {
	Key   string
	Value string
}

// ViewComponent implements a server-side view: Parse writes its initial
// form into a parent template, Updates exposes the channel of
// subsequent ele-updates.
type ViewComponent interface {
	Updates() <-chan []EleUpdate
	Parse(*template.Template) (string, error)
}

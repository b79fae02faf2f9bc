package vip8

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Console is a fixed-capacity scrollback of executed mnemonics, newest
// first. It only grows widgets once, at construction, and rotates labels
// afterwards.
type Console struct {
	capacity  int
	container *fyne.Container
}

func NewConsole(capacity int) *Console {
	labels := make([]fyne.CanvasObject, capacity)
	for i := range capacity {
		labels[i] = widget.NewLabel("")
	}
	return &Console{
		capacity:  capacity,
		container: container.NewVBox(labels...),
	}
}

func (o *Console) Prepend(msg string) {
	newEntry := widget.NewLabel(msg)
	newEntry.Theme().Font(fyne.TextStyle{Monospace: true})
	o.container.Objects = append([]fyne.CanvasObject{newEntry}, o.container.Objects[:o.capacity]...)
}

func (o *Console) Refresh() {
	o.container.Refresh()
}

func (o *Console) Object() fyne.CanvasObject {
	return o.container
}

// Content wraps a canvas object with a fixed minimum size.
type Content struct {
	fyne.CanvasObject
	size fyne.Size
}

func NewContent(o fyne.CanvasObject, size fyne.Size) *Content {
	return &Content{
		o,
		size,
	}
}

func (c *Content) MinSize() fyne.Size {
	return c.size
}

/*
 * Copyright 2026 Joshua Jones <joshua.jones.software@gmail.com>
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      www.apache.org
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package vip8 is a desktop frontend around the chip8 interpreter core: a
// fyne window showing the framebuffer, live register state and an opcode
// console, plus a sound-timer beep. All emulation semantics live in the
// chip8 package; this layer only paces the step loop and mirrors public
// processor state into widgets.
package vip8

import (
	"context"
	"image"
	"image/color"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"vip8/byteconv"
	"vip8/chip8"
)

// DefaultClockRate is the step interval used when the caller does not set
// one. Timers count steps, so the step rate is also the timer rate.
const DefaultClockRate = time.Second / 700 // 700hz

const pixelScale = 10

// keyMap lays the COSMAC keypad over the left of a QWERTY keyboard.
var keyMap = map[fyne.KeyName]uint8{
	fyne.Key1: 0x1, fyne.Key2: 0x2, fyne.Key3: 0x3, fyne.Key4: 0xC,
	fyne.KeyQ: 0x4, fyne.KeyW: 0x5, fyne.KeyE: 0x6, fyne.KeyR: 0xD,
	fyne.KeyA: 0x7, fyne.KeyS: 0x8, fyne.KeyD: 0x9, fyne.KeyF: 0xE,
	fyne.KeyZ: 0xA, fyne.KeyX: 0x0, fyne.KeyC: 0xB, fyne.KeyV: 0xF,
}

// Emulator owns one processor instance and the window around it.
type Emulator struct {
	// Clock is the interval between steps. Zero means DefaultClockRate.
	Clock time.Duration

	cpu     chip8.Processor
	beep    Beep
	paused  atomic.Bool
	next    atomic.Bool
	running atomic.Bool
}

// Configure applies the interpreter dialect switches to the processor.
func (e *Emulator) Configure(q chip8.Quirks) {
	e.cpu.SetQuirks(q)
}

// Seed fixes the processor's random source for reproducible runs.
func (e *Emulator) Seed(seed uint64) {
	e.cpu.Seed(seed)
}

// Tone sets the beep frequency in Hz.
func (e *Emulator) Tone(freq float64) {
	e.beep.Note = freq
}

// Load resets the processor and copies a ROM image into it.
func (e *Emulator) Load(b []byte) error {
	e.cpu.Reset()
	return e.cpu.Load(b)
}

// LoadFile resets the processor and loads a ROM image from disk.
func (e *Emulator) LoadFile(path string) error {
	e.cpu.Reset()
	return e.cpu.LoadFile(path)
}

func (e *Emulator) onKeyDown(k *fyne.KeyEvent) {
	if hex, ok := keyMap[k.Name]; ok {
		e.cpu.SetKey(hex, true)
	}
}

func (e *Emulator) onKeyUp(k *fyne.KeyEvent) {
	if k.Name == fyne.KeyP {
		e.paused.Store(!e.paused.Load())
		return
	}

	if k.Name == fyne.KeyN {
		e.next.Store(true)
		return
	}

	if hex, ok := keyMap[k.Name]; ok {
		e.cpu.SetKey(hex, false)
	}
}

func (e *Emulator) clock() time.Duration {
	if e.Clock > 0 {
		return e.Clock
	}
	return DefaultClockRate
}

func (e *Emulator) registerLine(i uint8) string {
	return "V" + byteconv.U8toh(i, 1) + ": " + byteconv.U8toh(e.cpu.Register(i), 2)
}

// Run opens the window and steps the processor on a ticker until the window
// closes or the first non-success outcome. Emulation halts on any error; the
// failing mnemonic and the outcome stay visible in the console.
func (e *Emulator) Run() {
	a := app.New()
	w := a.NewWindow("vip8")

	// Back-buffer for the 64x32 framebuffer pixels.
	buffer := image.NewRGBA(image.Rect(0, 0, chip8.Width, chip8.Height))

	screen := canvas.NewImageFromImage(buffer)
	screen.FillMode = canvas.ImageFillStretch  // Scales the grid to window size
	screen.ScaleMode = canvas.ImageScalePixels // Maintains "pixelated" retro look

	canv, ok := w.Canvas().(desktop.Canvas) // Extension that exposes OnKeyUp event
	if !ok {
		panic("emulator cannot be run on mobile")
	}
	canv.SetOnKeyDown(e.onKeyDown)
	canv.SetOnKeyUp(e.onKeyUp)

	screenContent := container.New(
		layout.NewGridWrapLayout(fyne.NewSize(float32(chip8.Width*pixelScale), float32(chip8.Height*pixelScale))),
		screen,
	)

	console := NewConsole(9)
	consoleContent := container.New(
		layout.NewGridWrapLayout(fyne.NewSize(125, float32(chip8.Height))),
		console.Object(),
	)

	registerData := make([]string, chip8.RegisterCount)
	boundRegisters := binding.BindStringList(&registerData)

	for i := uint8(0); i <= 0xF; i++ {
		registerData[i] = e.registerLine(i)
	}

	registerList := widget.NewListWithData(
		boundRegisters,
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(di binding.DataItem, obj fyne.CanvasObject) {
			s, _ := di.(binding.String).Get()
			obj.(*widget.Label).SetText(s)
		},
	)

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.MediaPlayIcon(), func() {
			e.paused.Store(false)
		}),
		widget.NewToolbarAction(theme.MediaPauseIcon(), func() {
			e.paused.Store(true)
		}),
		widget.NewToolbarAction(theme.MediaSkipNextIcon(), func() {
			e.next.Store(true)
		}),
	)

	programCounter := widget.NewLabel("PC: " + byteconv.U16toh(e.cpu.ProgramCounter(), 3))
	index := widget.NewLabel("I: " + byteconv.U16toh(e.cpu.Index(), 3))
	stackDepth := widget.NewLabel("Stack: " + strconv.Itoa(e.cpu.StackDepth()))

	statusBar := container.NewHBox(
		layout.NewSpacer(), programCounter,
		layout.NewSpacer(), index,
		layout.NewSpacer(), stackDepth,
		layout.NewSpacer(),
	)

	box := container.NewBorder(toolbar, statusBar, consoleContent, registerList, screenContent)

	w.SetContent(box)
	w.Resize(fyne.NewSize(float32(chip8.Width*pixelScale), float32(chip8.Height*pixelScale)))
	w.SetFixedSize(true)

	e.running.Store(true)

	var wg sync.WaitGroup

	wg.Go(func() {
		defer func() {
			_ = e.beep.Stop()
		}()

		cpuTicker := time.NewTicker(e.clock())
		defer cpuTicker.Stop()

		for range cpuTicker.C {
			if !e.running.Load() {
				break
			}

			if e.paused.Load() {
				if !e.next.Load() {
					continue
				}
				e.next.Store(false)
			}

			opcode, info, err := e.cpu.Step()

			console.Prepend(opcode.String())

			if err != nil {
				console.Prepend("halted: " + err.Error())
			}

			for i := uint8(0); i <= 0xF; i++ {
				registerData[i] = e.registerLine(i)
			}

			_ = boundRegisters.Reload()

			redraw := (info & chip8.Redraw) != 0
			sound := (info & chip8.Sound) != 0

			if sound && err == nil {
				_ = e.beep.Start(context.Background())
			} else {
				_ = e.beep.Stop()
			}

			if redraw {
				for i, val := range e.cpu.Display() {
					x, y := i%chip8.Width, i/chip8.Width
					c := color.Black
					if val == 1 {
						c = color.White
					}
					buffer.Set(x, y, c)
				}
			}

			pc := e.cpu.ProgramCounter()
			ir := e.cpu.Index()
			sd := e.cpu.StackDepth()

			fyne.Do(func() {
				if redraw {
					screen.Refresh()
				}

				console.Refresh()
				registerList.Refresh()

				programCounter.SetText("PC: " + byteconv.U16toh(pc, 3))
				index.SetText("I: " + byteconv.U16toh(ir, 3))
				stackDepth.SetText("Stack: " + strconv.Itoa(sd))
			})

			if err != nil {
				// The processor does not stop itself; the loop does.
				break
			}
		}
	})

	w.ShowAndRun()
	e.running.Store(false)
	wg.Wait()
}

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

package main

import (
	"flag"
	"log"
	"os"
	"time"

	"vip8"
	"vip8/chip8"
)

func main() {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	var quirks chip8.Quirks
	flags.BoolVar(&quirks.ShiftUsesVY, "shift-vy", false, "SHR/SHL shift VY into VX (COSMAC VIP behavior)")
	flags.BoolVar(&quirks.JumpUsesVX, "jump-vx", false, "BXNN jumps to XNN + VX instead of NNN + V0")
	flags.BoolVar(&quirks.IndexAdvance, "index-advance", false, "FX55/FX65 advance I past the copied registers (COSMAC VIP behavior)")

	hz := flags.Int("hz", 700, "instructions per second")
	seed := flags.Uint64("seed", 0, "fixed RND seed, 0 seeds from the system")
	tone := flags.Float64("tone", 440, "beep frequency in Hz")

	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	if flags.NArg() != 1 {
		log.Fatal("must specify a rom file")
	}
	if *hz <= 0 {
		log.Fatal("hz must be positive")
	}

	e := vip8.Emulator{
		Clock: time.Second / time.Duration(*hz),
	}

	e.Configure(quirks)
	if *seed != 0 {
		e.Seed(*seed)
	}

	if err := e.LoadFile(flags.Arg(0)); err != nil {
		log.Fatal(err)
	}

	e.Tone(*tone)
	e.Run()
}

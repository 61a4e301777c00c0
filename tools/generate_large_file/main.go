// Large Source File Generator
//
// This tool generates a large VHDL-like source file for performance testing and profiling.
// It creates design units that mix reserved words, repeated names and fresh names so that
// both interning hits and arena growth are exercised.
//
// Usage:
//
//	go run main.go > large.vhd
//	go run main.go 20000000 > large.vhd  # Specify target size in bytes
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB
)

var (
	types = []string{
		"bit", "bit_vector", "std_logic", "std_logic_vector",
		"integer", "natural", "boolean", "unsigned", "signed",
	}

	ports = []string{
		"clk", "rst", "en", "din", "dout", "addr", "data",
		"valid", "ready", "wr_en", "rd_en", "full", "empty",
	}

	prefixes = []string{
		"counter", "fifo", "uart", "spi", "alu", "mux", "decoder",
		"encoder", "shifter", "timer", "pwm", "ram", "rom", "ctrl",
	}

	// Identifiers in other scripts and cases exercise folding.
	exotic = []string{"Größe", "Zähler", "ÉTAT", `\Bus Width\`, `\reset-n\`}
)

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}

	writeHeader()

	bytesWritten := 0
	unitCount := 0

	for bytesWritten < targetSize {
		name := fmt.Sprintf("%s_%d", prefixes[rand.Intn(len(prefixes))], unitCount)

		output := generateEntity(name) + generateArchitecture(name)
		fmt.Print(output)
		bytesWritten += len(output)
		unitCount++
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d bytes with %d design units\n", bytesWritten, unitCount)
}

func writeHeader() {
	fmt.Println("-- Large source file for performance testing")
	fmt.Println("-- Generated:", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Println()
	fmt.Println("library ieee;")
	fmt.Println("use ieee.std_logic_1164.all;")
	fmt.Println()
}

func generateEntity(name string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "entity %s is\n", name)
	fmt.Fprintf(&b, "  generic (WIDTH : natural := %d);\n", 1<<rand.Intn(6))
	b.WriteString("  port (\n")

	n := rand.Intn(5) + 2
	for i := 0; i < n; i++ {
		dir := "in"
		if rand.Intn(3) == 0 {
			dir = "out"
		}
		sep := ";"
		if i == n-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "    %s : %s %s%s\n", ports[rand.Intn(len(ports))], dir, types[rand.Intn(len(types))], sep)
	}

	b.WriteString("  );\n")
	fmt.Fprintf(&b, "end entity %s;\n\n", strings.ToUpper(name))
	return b.String()
}

func generateArchitecture(name string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "architecture rtl of %s is\n", name)

	signals := make([]string, rand.Intn(4)+1)
	for i := range signals {
		if rand.Intn(10) == 0 {
			signals[i] = exotic[rand.Intn(len(exotic))]
		} else {
			signals[i] = fmt.Sprintf("s_%s_%d", ports[rand.Intn(len(ports))], rand.Intn(1000))
		}
		fmt.Fprintf(&b, "  signal %s : %s;\n", signals[i], types[rand.Intn(len(types))])
	}

	b.WriteString("begin\n")
	fmt.Fprintf(&b, "  %s_proc : process (clk)\n", name)
	b.WriteString("  begin\n")
	b.WriteString("    if clk'event and clk = '1' then\n")
	for _, s := range signals {
		fmt.Fprintf(&b, "      %s <= %s; -- %d\n", s, randValue(), rand.Intn(100))
	}
	b.WriteString("    end if;\n")
	b.WriteString("  end process;\n")
	b.WriteString("end architecture rtl;\n\n")
	return b.String()
}

func randValue() string {
	switch rand.Intn(4) {
	case 0:
		return "'0'"
	case 1:
		return fmt.Sprintf("16#%X#", rand.Intn(4096))
	case 2:
		return fmt.Sprintf("%q", strconv.Itoa(rand.Intn(100)))
	default:
		return strconv.Itoa(rand.Intn(1_000_000))
	}
}

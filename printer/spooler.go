package printer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Spooler pipes raw bytes to the OS print spooler.
type Spooler struct {
	Command string
	Printer string
}

func NewSpooler(command, printer string) *Spooler {
	return &Spooler{Command: command, Printer: printer}
}

// Send pipes data to printerName, or to the default printer when it is empty.
func (s *Spooler) Send(ctx context.Context, printerName string, data []byte) error {
	if printerName == "" {
		printerName = s.Printer
	}
	cmd := exec.CommandContext(ctx, s.Command, "-d", printerName, "-o", "raw")
	cmd.Stdin = bytes.NewReader(data)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("print to %s failed: %w: %s", printerName, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func (s *Spooler) PrintReceipt(ctx context.Context, printerName string, r Receipt) error {
	return s.Send(ctx, printerName, r.ESCPOS())
}

// ListPrinters parses `lpstat -p`.
func ListPrinters(ctx context.Context) ([]string, error) {
	out, err := exec.CommandContext(ctx, "lpstat", "-p").Output()
	if err != nil {
		return nil, fmt.Errorf("lpstat failed: %w", err)
	}
	return parseLpstat(string(out)), nil
}

func parseLpstat(out string) []string {
	var printers []string
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "printer") {
			continue
		}
		if fields := strings.Fields(line); len(fields) > 1 {
			printers = append(printers, fields[1])
		}
	}
	return printers
}

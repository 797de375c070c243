// pcdinfo is a CLI utility for inspecting PCD point cloud files.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/maralbahari/pcd-segmentation-interface/pkg/cloud"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/pcd"

	"github.com/maralbahari/pcd-segmentation-interface/internal/label"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "stats":
		cmdStats(args)
	case "bounds":
		cmdBounds(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pcdinfo - PCD point cloud inspection utility

Usage:
  pcdinfo <command> [options]

Commands:
  info <file.pcd>                 Show header and point counts
  stats <file.pcd> [-channel N]   Per-channel statistics
  bounds <file.pcd> [-format F]   Spatial bounds in renderer axes

Examples:
  pcdinfo info scan.pcd
  pcdinfo stats scan.pcd -channel 3
  pcdinfo bounds scan.pcd -format xzy`)
}

func parse(path string) *pcd.File {
	file, err := pcd.ParseFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return file
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: pcdinfo info <file.pcd>")
		os.Exit(1)
	}

	file := parse(args[0])

	fmt.Printf("File:     %s\n", args[0])
	fmt.Printf("Version:  %s\n", file.Version)
	fmt.Printf("Fields:   %s\n", strings.Join(file.Fields, " "))
	fmt.Printf("Width:    %d\n", file.Width)
	fmt.Printf("Height:   %d\n", file.Height)
	fmt.Printf("Points:   %d\n", file.NumPoints())
	fmt.Printf("Channels: %d\n", file.Channels)
}

func cmdStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	channel := fs.Int("channel", -1, "Channel index (-1 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: pcdinfo stats <file.pcd> [-channel N]")
		os.Exit(1)
	}

	file := parse(fs.Arg(0))
	buffer := file.Buffer(cloud.FormatXYZ)

	printOne := func(ch int) {
		stats := label.ComputeChannelStats(buffer, ch)
		name := fmt.Sprintf("channel %d", ch)
		if ch < len(file.Fields) {
			name = fmt.Sprintf("channel %d (%s)", ch, file.Fields[ch])
		}
		fmt.Printf("%s\n", name)
		fmt.Printf("  min    %.6f\n", stats.Min)
		fmt.Printf("  max    %.6f\n", stats.Max)
		fmt.Printf("  mean   %.6f\n", stats.Mean)
		fmt.Printf("  median %.6f\n", stats.Median)
		fmt.Printf("  p05    %.6f\n", stats.P05)
		fmt.Printf("  p95    %.6f\n", stats.P95)
	}

	if *channel >= 0 {
		if *channel >= buffer.NumChannels() {
			fmt.Fprintf(os.Stderr, "Error: channel %d out of range (0..%d)\n",
				*channel, buffer.NumChannels()-1)
			os.Exit(1)
		}
		printOne(*channel)
		return
	}
	for ch := 0; ch < buffer.NumChannels(); ch++ {
		printOne(ch)
	}
}

func cmdBounds(args []string) {
	fs := flag.NewFlagSet("bounds", flag.ExitOnError)
	format := fs.String("format", "xyz", "Coordinate axis order")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: pcdinfo bounds <file.pcd> [-format F]")
		os.Exit(1)
	}

	file := parse(fs.Arg(0))
	buffer := file.Buffer(cloud.FormatByName(*format))
	min, max := buffer.Bounds()

	fmt.Printf("Format: %s\n", *format)
	fmt.Printf("Min:    (%.4f, %.4f, %.4f)\n", min.X, min.Y, min.Z)
	fmt.Printf("Max:    (%.4f, %.4f, %.4f)\n", max.X, max.Y, max.Z)
	fmt.Printf("Size:   (%.4f, %.4f, %.4f)\n", max.X-min.X, max.Y-min.Y, max.Z-min.Z)
}

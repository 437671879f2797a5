// aecenc is a command-line front end for the CCSDS 121.0-B-2 adaptive
// entropy coder (pkg/aec), grounded on the teacher's cobra-based
// audioconv CLI (cmd/audioconv) but driving the encoder instead of a
// lossy format converter.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/formeo/aecenc/pkg/aec"
	"github.com/formeo/aecenc/pkg/sampleio"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

var (
	flagBits       int
	flagBlockSize  int
	flagRSI        int
	flagSigned     bool
	flagPreprocess bool
	flagMSBFirst   bool
	flag3Byte      bool
	flagRestricted bool
	flagPadRSI     bool
	flagOutput     string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "aecenc",
	Short:   "CCSDS 121.0-B-2 adaptive entropy encoder",
	Version: "0.1.0",
}

var encodeCmd = &cobra.Command{
	Use:   "encode [input.wav]",
	Short: "Encode a WAV file's samples into a CCSDS 121.0-B-2 bitstream",
	Args:  cobra.ExactArgs(1),
	RunE:  runEncode,
}

func init() {
	encodeCmd.Flags().IntVar(&flagBits, "bits", 16, "bits per sample (1-32)")
	encodeCmd.Flags().IntVar(&flagBlockSize, "block-size", 16, "samples per block (8, 16, 32, or 64)")
	encodeCmd.Flags().IntVar(&flagRSI, "rsi", 128, "blocks per reference sample interval")
	encodeCmd.Flags().BoolVar(&flagSigned, "signed", true, "interpret samples as signed")
	encodeCmd.Flags().BoolVar(&flagPreprocess, "preprocess", true, "enable the predictor/preprocessor")
	encodeCmd.Flags().BoolVar(&flagMSBFirst, "msb-first", true, "pack multi-byte samples most-significant-byte first")
	encodeCmd.Flags().BoolVar(&flag3Byte, "3byte", false, "pack samples wider than 16 bits into 3 bytes")
	encodeCmd.Flags().BoolVar(&flagRestricted, "restricted", false, "use the restricted option-ID width table")
	encodeCmd.Flags().BoolVar(&flagPadRSI, "pad-rsi", false, "pad output to a byte boundary at every RSI")
	encodeCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file (default: input with .aec extension)")
	encodeCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "log details of the loaded WAV input")

	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(infoCmd)
}

func configFromFlags() aec.Config {
	var flags aec.Flags
	if flagSigned {
		flags |= aec.FlagSigned
	}
	if flagPreprocess {
		flags |= aec.FlagPreprocess
	}
	if flagMSBFirst {
		flags |= aec.FlagMSBFirst
	}
	if flag3Byte {
		flags |= aec.Flag3Byte
	}
	if flagRestricted {
		flags |= aec.FlagRestricted
	}
	if flagPadRSI {
		flags |= aec.FlagPadRSI
	}

	return aec.Config{
		BitsPerSample: flagBits,
		BlockSize:     flagBlockSize,
		RSI:           flagRSI,
		Flags:         flags,
	}
}

func runEncode(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := flagOutput
	if output == "" {
		output = trimExt(input) + ".aec"
	}

	src, err := loadWAV(input)
	if err != nil {
		return err
	}
	if flagVerbose {
		logger.Info("loaded WAV", "sampleRate", src.SampleRate, "channels", src.Channels, "bitDepth", src.BitDepth, "samples", len(src.Samples))
	}

	cfg := configFromFlags()
	extractor, err := sampleio.Select(cfg)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	cfg.Extractor = extractor

	raw := packBytes(src.Samples, flagBits, flag3Byte, flagMSBFirst)

	out, err := aec.BufferEncode(cfg, raw)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if err := os.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	logger.Info("encoded", "input", input, "output", output, "inputBytes", len(raw), "outputBytes", len(out))
	return nil
}

var infoCmd = &cobra.Command{
	Use:   "info [input.wav]",
	Short: "Show WAV sample info",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadWAV(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Sample rate: %d Hz\n", src.SampleRate)
		fmt.Printf("Channels:    %d\n", src.Channels)
		fmt.Printf("Bit depth:   %d\n", src.BitDepth)
		fmt.Printf("Samples:     %d\n", len(src.Samples))
		return nil
	},
}

func trimExt(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}

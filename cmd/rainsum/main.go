// rainsum prints Rainbow digests of files or standard input, one
// "<hex> <path>" line per input.
//
// Files are streamed through a known-length session (the length comes from
// stat), which produces the same digest as hashing the whole file in memory.
// Standard input has no known length, so it is buffered and hashed one-shot,
// keeping every digest in the known-length family.
package main

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/mystuffs/rain/rainbow"
)

var testVectors = []string{
	"",
	"a",
	"abc",
	"message digest",
	"abcdefghijklmnopqrstuvwxyz",
	"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789",
	"12345678901234567890123456789012345678901234567890123456789012345678901234567890",
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	app := &cli.App{
		Name:      "rainsum",
		Usage:     "print Rainbow digests of files or standard input",
		ArgsUsage: "[file ...]",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:    "size",
				Aliases: []string{"s"},
				Value:   256,
				Usage:   "digest size in bits (64, 128 or 256)",
			},
			&cli.StringFlag{
				Name:  "seed",
				Value: "0",
				Usage: "numeric seed (decimal or 0x-hex); any other string is hashed to a seed",
			},
			&cli.BoolFlag{
				Name:    "test-vectors",
				Aliases: []string{"t"},
				Usage:   "hash the built-in test vector strings",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write results to `FILE` instead of stdout",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("rainsum failed")
	}
}

func run(c *cli.Context) error {
	size := rainbow.Size(c.Uint("size"))
	seed := parseSeed(c.String("seed"))

	out := io.Writer(os.Stdout)
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	w := bufio.NewWriter(out)

	if c.Bool("test-vectors") {
		for _, v := range testVectors {
			digest, err := rainbow.Sum([]byte(v), seed, size, binary.LittleEndian)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s %q\n", hex.EncodeToString(digest), v)
		}
		return w.Flush()
	}

	files := c.Args().Slice()
	if len(files) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		digest, err := rainbow.Sum(data, seed, size, binary.LittleEndian)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s stdin\n", hex.EncodeToString(digest))
		return w.Flush()
	}

	for _, path := range files {
		digest, err := hashFile(path, seed, size)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s\n", hex.EncodeToString(digest), path)
	}
	return w.Flush()
}

func hashFile(path string, seed uint64, size rainbow.Size) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	h, err := rainbow.New(seed, uint64(info.Size()), size)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 64*1024)
	for {
		n, rerr := f.Read(buf)
		if n > 0 {
			if _, werr := h.Write(buf[:n]); werr != nil {
				return nil, werr
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, rerr
		}
	}
	return h.Sum()
}

// parseSeed accepts a decimal or 0x-prefixed number; anything else is
// reduced to a seed with Rainbow-64 (seed 0), matching the original tool's
// convention of hashing non-numeric seed strings.
func parseSeed(s string) uint64 {
	if n, err := strconv.ParseUint(s, 0, 64); err == nil {
		return n
	}
	digest := rainbow.Sum64([]byte(s), 0)
	return binary.LittleEndian.Uint64(digest[:])
}

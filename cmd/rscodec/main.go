// Command rscodec is a thin front-end over textcodec: it feeds
// alphabet-mapped strings through a Reed-Solomon code for encode,
// verify, and decode, and nothing more. Chunking arbitrary binary
// streams or files is out of scope.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/go-rscodec/rscodec/textcodec"
)

func main() {
	var (
		p       = pflag.Uint64P("prime", "p", 59, "field order (must be prime)")
		n       = pflag.Uint64P("n", "n", 58, "codeword length")
		k       = pflag.Uint64P("k", "k", 46, "message length")
		nostrip = pflag.Bool("nostrip", false, "do not strip leading zero symbols from a decoded message")
		verbose = pflag.BoolP("verbose", "v", false, "enable debug logging")
		help    = pflag.Bool("help", false, "display help text")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <encode|verify|decode> <word>\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	logger := log.New(os.Stderr)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if *help || pflag.NArg() != 2 {
		pflag.Usage()
		if *help {
			return
		}
		os.Exit(2)
	}

	command, word := pflag.Arg(0), pflag.Arg(1)

	codec, err := textcodec.NewDefault(*p, *n, *k)
	if err != nil {
		logger.Fatal("building codec", "err", err)
	}
	logger.Debug("codec ready", "p", *p, "n", *n, "k", *k, "alpha", codec.Code().Alpha())

	switch command {
	case "encode":
		out, err := codec.Encode(word)
		if err != nil {
			logger.Fatal("encode failed", "err", err)
		}
		fmt.Println(out)

	case "verify":
		ok, err := codec.Verify(word)
		if err != nil {
			logger.Fatal("verify failed", "err", err)
		}
		fmt.Println(ok)
		if !ok {
			os.Exit(1)
		}

	case "decode":
		out, err := codec.Decode(word, *nostrip)
		if err != nil {
			logger.Fatal("decode failed", "err", err)
		}
		fmt.Println(out)

	default:
		logger.Error("unknown command", "command", command)
		pflag.Usage()
		os.Exit(2)
	}
}

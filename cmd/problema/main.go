// Command problema encrypts and decrypts UTF-8 text with the problema
// cipher's character path. Ciphertext printed to stdout is hex-encoded;
// ciphertext written to files is raw UTF-8 bytes.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	problema "github.com/problema-cipher/problema"
	"github.com/problema-cipher/problema/pkg/passkey"
)

const maxInputSize = 4096

const banner = `problema - rotor/block hybrid cipher for mixed-script text
experimental study cipher, not for protecting real data
`

func main() {
	encrypt := flag.Bool("e", true, "encrypt the input")
	decrypt := flag.Bool("d", false, "decrypt the input")
	keyStr := flag.String("k", "", "passphrase to derive the key from (required)")
	inFile := flag.String("i", "", "input file (default: argument or stdin)")
	outFile := flag.String("o", "", "output file (default: stdout)")
	verbose := flag.Bool("v", false, "enable per-stage trace output")
	flag.Parse()

	if *keyStr == "" {
		fmt.Fprintln(os.Stderr, "Error: no key given, use -k")
		flag.Usage()
		os.Exit(1)
	}
	if *decrypt {
		*encrypt = false
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	fmt.Fprint(os.Stderr, banner)

	input, fromFile, err := readInput(*inFile, flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	key, err := passkey.Derive(*keyStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error deriving key: %v\n", err)
		os.Exit(1)
	}

	cipher, err := problema.Init(key[:], &problema.Config{Logger: log, Trace: *verbose})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing cipher: %v\n", err)
		os.Exit(1)
	}
	defer cipher.Close()

	var output []byte
	if *encrypt {
		output, err = cipher.EncryptText(input)
	} else {
		if !fromFile {
			// Terminal-supplied ciphertext is hex.
			input, err = hex.DecodeString(strings.TrimSpace(string(input)))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: ciphertext is not valid hex: %v\n", err)
				os.Exit(1)
			}
		}
		output, err = cipher.DecryptText(input)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error processing input: %v\n", err)
		os.Exit(1)
	}

	if *outFile != "" {
		if err := os.WriteFile(*outFile, output, 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Result written to %s\n", *outFile)
		return
	}

	if *encrypt {
		fmt.Printf("%X\n", output)
	} else {
		fmt.Printf("%s\n", output)
	}
}

// readInput resolves the input source: file, positional argument, or
// stdin, in that order. fromFile marks raw (non-hex) ciphertext sources.
func readInput(inFile, arg string) (data []byte, fromFile bool, err error) {
	if inFile != "" {
		data, err = os.ReadFile(inFile)
		if err != nil {
			return nil, false, err
		}
		if len(data) > maxInputSize {
			return nil, false, fmt.Errorf("input exceeds %d bytes: %w", maxInputSize, problema.ErrBufferTooSmall)
		}
		return data, true, nil
	}

	if arg != "" {
		if len(arg) > maxInputSize {
			return nil, false, fmt.Errorf("input exceeds %d bytes: %w", maxInputSize, problema.ErrBufferTooSmall)
		}
		return []byte(arg), false, nil
	}

	fmt.Fprintf(os.Stderr, "Reading up to %d bytes from stdin...\n", maxInputSize)
	data, err = io.ReadAll(io.LimitReader(os.Stdin, maxInputSize+1))
	if err != nil {
		return nil, false, err
	}
	if len(data) > maxInputSize {
		return nil, false, fmt.Errorf("input exceeds %d bytes: %w", maxInputSize, problema.ErrBufferTooSmall)
	}
	data = []byte(strings.TrimSuffix(string(data), "\n"))
	return data, false, nil
}

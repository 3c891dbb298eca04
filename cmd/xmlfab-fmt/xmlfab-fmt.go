package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/lestrrat-go/xmlfab"
	"github.com/lestrrat-go/xmlfab/internal/cliutil"
)

type cmdopts struct {
	Header  bool `long:"header" description:"emit the XML declaration line"`
	Indent  int  `long:"indent" default:"2" description:"number of spaces per indent level"`
	Version bool `long:"version"`
}

const version = "0.1.0"

func main() {
	os.Exit(_main())
}

func showVersion() {
	fmt.Printf("xmlfab-fmt: using xmlfab version %s\n", version)
}

func showUsage() {
	fmt.Printf(`Usage : xmlfab-fmt [options] XMLfiles ...
	Parse the XML files and write them back out pretty-printed
	--header  : emit the XML declaration line
	--indent  : number of spaces per indent level (default 2)
	--version : display the version of the XML library used
`)
}

func _main() int {
	opts := cmdopts{}
	args, err := flags.ParseArgs(&opts, os.Args[1:])
	if err != nil {
		showUsage()
		return 1
	}

	if opts.Version {
		showVersion()
		return 0
	}
	if opts.Indent < 0 {
		opts.Indent = 0
	}

	var inputCh <-chan io.Reader
	var errCh <-chan error
	switch {
	case len(args) > 0: // filename present
		inputCh, errCh = openInputs(args)
	case !cliutil.IsTty(os.Stdin.Fd()):
		ch := make(chan io.Reader, 1)
		ch <- os.Stdin
		close(ch)
		inputCh = ch
	default:
		showUsage()
		return 1
	}

	for in := range inputCh {
		buf, err := io.ReadAll(in)
		if c, ok := in.(io.Closer); ok && c != os.Stdin {
			c.Close()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
		doc, err := xmlfab.Parse(buf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}

		root := doc.RootElement()
		if root == nil {
			fmt.Fprintf(os.Stderr, "no document element\n")
			return 1
		}

		f, err := xmlfab.New(root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}

		options := []xmlfab.OutputOption{
			xmlfab.WithIndent(strings.Repeat(" ", opts.Indent)),
		}
		if opts.Header {
			options = append(options, xmlfab.WithHeader(true))
		}
		if err := f.Print(os.Stdout, options...); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
	}

	select {
	case err := <-errCh:
		fmt.Fprintf(os.Stderr, "%s", err)
		return 1
	default:
	}

	return 0
}

// openInputs opens the named files in order, delivering each on the
// returned reader channel. The error channel is buffered so an open
// failure never strands the producer: the send completes, the reader
// channel closes, and the consumer picks up the error afterwards.
func openInputs(paths []string) (<-chan io.Reader, <-chan error) {
	inputCh := make(chan io.Reader)
	errCh := make(chan error, 1)
	go func() {
		defer close(inputCh)
		for _, f := range paths {
			fh, err := os.Open(f)
			if err != nil {
				errCh <- err
				return
			}
			inputCh <- fh
		}
	}()
	return inputCh, errCh
}

//go:build js && wasm

// f2f-wasm runs the sample forms inside a browser page. The page must carry
// an element with id "forms":
//
//	GOOS=js GOARCH=wasm go build -o f2f.wasm ./cmd/f2f-wasm
package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-f2f/internal/demo"
	"github.com/goliatone/go-f2f/internal/logging"
	"github.com/goliatone/go-f2f/pkg/browser"
	"github.com/goliatone/go-f2f/pkg/dom"
	"github.com/goliatone/go-f2f/pkg/form"
)

const containerID = "forms"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "f2f: %v\n", err)
		os.Exit(1)
	}
	select {}
}

func run() error {
	logger, err := logging.New("info", "text", os.Stderr)
	if err != nil {
		return err
	}

	doc, body := dom.NewDocument()
	dom.Append(body, dom.Element("div", dom.Attr("id", containerID)))
	session := form.New(doc, browser.NewLocation(), form.WithLogger(logger), form.WithPopStateReplay(false))

	set, err := demo.Definitions(nil)
	if err != nil {
		return err
	}
	if _, err := set.Mount(session, containerID, demo.Registry()); err != nil {
		return err
	}

	bridge := browser.NewBridge(session, browser.WithLogger(logger))
	if err := bridge.Mount(containerID); err != nil {
		return err
	}
	bridge.Start()
	return nil
}

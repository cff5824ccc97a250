package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kobex777/AnyMaps/internal/mindmap/domain"
	"github.com/kobex777/AnyMaps/internal/mindmap/ingest/validator"
	"github.com/kobex777/AnyMaps/internal/mindmap/salvage"
	"github.com/kobex777/AnyMaps/internal/mindmap/service"
)

// runSalvage reads a raw model reply, salvages it and prints the spec JSON.
func runSalvage(args []string, w io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: salvage <replyFile>")
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	spec, err := salvage.Salvage(string(b))
	if err != nil {
		return err
	}
	if err := validator.CheckStructure(spec); err != nil {
		return err
	}
	return writeJSON(w, spec)
}

// runSummarize prints the change summary between two spec files.
func runSummarize(args []string, w io.Writer) error {
	if len(args) < 2 {
		return errors.New("usage: summarize <original> <enhanced>")
	}
	original, err := readSpec(args[0])
	if err != nil {
		return err
	}
	enhanced, err := readSpec(args[1])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, service.Summarize(original, enhanced))
	return err
}

func readSpec(path string) (domain.DiagramSpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.DiagramSpec{}, err
	}
	var spec domain.DiagramSpec
	if err := json.Unmarshal(b, &spec); err != nil {
		return domain.DiagramSpec{}, fmt.Errorf("%s: %w", path, err)
	}
	return spec.WithDefaults(), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

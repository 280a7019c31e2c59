package main

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func execute(args ...string) (string, error) {
	out, _, err := executeStreams(args...)
	return out, err
}

func executeStreams(args ...string) (string, string, error) {
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

const definition = `
stations:
  - {name: load, type: json.load}
  - {name: pick, type: extract, config: {key: data}}
  - {name: dump, type: json.dump}
connections:
  - [load, pick, dump]
paths:
  main: load/pick/dump
  raw: load
  encode: dump
`

func TestExplain(t *testing.T) {
	out, err := execute("explain", "a/((b|c))/(d|d)")
	if !assert.Nil(t, err) {
		return
	}
	assert.Contains(t, out, "Notation: a/((b|c))/(d|d)")
	assert.Contains(t, out, "Physical: a/b/c/d")
	assert.Contains(t, out, "Gates:    main/main/main/main")
	assert.Contains(t, out, "b, c")

	out, err = execute("explain", "--markdown", "a/b#alt")
	assert.Nil(t, err)
	assert.Contains(t, out, "| Token |")

	_, err = execute("explain", "a/(b|c")
	assert.NotNil(t, err)
}

func TestRun(t *testing.T) {
	location := filepath.Join(t.TempDir(), "net.yaml")
	assert.Nil(t, os.WriteFile(location, []byte(definition), 0644))

	var testCases = []struct {
		description string
		args        []string
		expect      string
		expectErr   bool
	}{
		{description: "default path", args: []string{"--payload", `{"data":[1,2]}`}, expect: "[1,2]\n"},
		{description: "named path decoded payload", args: []string{"--path", "raw", "--json", "--payload", `"{\"a\":1}"`}, expect: "{\n  \"a\": 1\n}\n"},
		{description: "unknown path", args: []string{"--path", "missing"}, expectErr: true},
		{description: "invalid context", args: []string{"--context", "novalue"}, expectErr: true},
	}
	for _, testCase := range testCases {
		out, err := execute(append([]string{"run", "--schema", location}, testCase.args...)...)
		if testCase.expectErr {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		if assert.Nil(t, err, testCase.description) {
			assert.Equal(t, testCase.expect, out, testCase.description)
		}
	}
}

func TestWatch(t *testing.T) {
	location := filepath.Join(t.TempDir(), "net.yaml")
	assert.Nil(t, os.WriteFile(location, []byte(definition), 0644))

	out, err := execute("watch", "--schema", location, "--path", "encode", "--payload", "x", "--until", "traversals >= 2")
	if assert.Nil(t, err) {
		assert.True(t, strings.HasPrefix(out, "iterations: 2\n"), out)
	}

	_, progressOut, err := executeStreams("watch", "--schema", location, "--path", "encode", "--payload", "x", "--while", "traversals < 3", "--progress")
	assert.Nil(t, err)
	assert.Contains(t, progressOut, "session default: running 0, completed 1, failed 0, iterations 3")

	_, err = execute("watch", "--schema", location, "--until", "true", "--while", "true")
	assert.NotNil(t, err)
	_, err = execute("watch", "--schema", location)
	assert.NotNil(t, err)
}

func TestWatch_MetricsAddr(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, "net.yaml")
	assert.Nil(t, os.WriteFile(location, []byte(definition), 0644))
	config := filepath.Join(dir, "config.yaml")
	assert.Nil(t, os.WriteFile(config, []byte("metrics:\n  enabled: true\n"), 0644))

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if !assert.Nil(t, err) {
		return
	}
	defer busy.Close()

	_, err = execute("watch", "--config", config, "--schema", location, "--path", "encode", "--payload", "x",
		"--until", "true", "--metrics-addr", busy.Addr().String())
	if assert.NotNil(t, err) {
		assert.Contains(t, err.Error(), "failed to serve metrics")
	}

	out, err := execute("watch", "--config", config, "--schema", location, "--path", "encode", "--payload", "x",
		"--until", "true", "--metrics-addr", "127.0.0.1:0")
	assert.Nil(t, err)
	assert.True(t, strings.HasPrefix(out, "iterations: 1\n"), out)
}

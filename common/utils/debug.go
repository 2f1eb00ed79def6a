package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type Context map[string]interface{}

type Message struct {
	Time    string  `json:"time"`
	Service string  `json:"service"`
	Message string  `json:"message"`
	Context Context `json:"context"`
}

var (
	debugLock    sync.Mutex
	debugEnabled = true
	debugOutput  io.Writer = os.Stdout
)

// SetDebug toggles the JSON line logger; simulations stepping thousands of
// ticks usually keep it off
func SetDebug(enabled bool) {
	debugLock.Lock()
	defer debugLock.Unlock()

	debugEnabled = enabled
}

func SetDebugOutput(w io.Writer) {
	debugLock.Lock()
	defer debugLock.Unlock()

	debugOutput = w
}

func Debug(service string, message string) {
	DebugWithContext(service, message, nil)
}

func DebugWithContext(service string, message string, extra Context) {
	debugLock.Lock()
	defer debugLock.Unlock()

	if !debugEnabled {
		return
	}

	context := make(Context, 0)

	if hostname, err := os.Hostname(); err == nil {
		context["hostname"] = hostname
	}

	for k, v := range extra {
		context[k] = v
	}

	messageStruct := Message{
		Time:    time.Now().Format(time.RFC3339),
		Service: service,
		Message: message,
		Context: context,
	}

	data, _ := json.Marshal(messageStruct)

	fmt.Fprintln(debugOutput, string(data))
}

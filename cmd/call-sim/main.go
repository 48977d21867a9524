// call-sim: interactive webhook simulator for the translator service.
// Drives a running server through the same events the telephony
// provider would send, so call flows can be exercised without placing
// real phone calls.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/spf13/pflag"

	"github.com/virio-ai/go-translator/internal/httpc"
	"github.com/virio-ai/go-translator/pkg/telephony"
)

func main() {
	serverURL := pflag.String("server", "http://localhost:3000", "translator server base URL")
	pflag.Parse()

	webhook := strings.TrimSuffix(*serverURL, "/") + "/vapi/events"
	callID := "sim-" + uuid.NewString()

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Println()
		fmt.Println("===== Webhook Simulator =====")
		fmt.Println("1. Simulate call start")
		fmt.Println("2. Send customer transcription")
		fmt.Println("3. Send assistant transcription")
		fmt.Println("4. Simulate call end")
		fmt.Println("5. Generate new call ID")
		fmt.Println("6. Tail live event feed")
		fmt.Println("7. Exit")
		fmt.Println("=============================")
		fmt.Printf("Current call ID: %s\n", callID)
		fmt.Print("Select an option (1-7): ")

		if !in.Scan() {
			return
		}

		switch strings.TrimSpace(in.Text()) {
		case "1":
			post(webhook, telephony.Event{Type: telephony.EventCallStart, CallID: callID})
		case "2":
			post(webhook, transcription(callID, prompt(in, "Enter customer message: "), telephony.ChannelCustomer))
		case "3":
			post(webhook, transcription(callID, prompt(in, "Enter assistant message: "), telephony.ChannelAssistant))
		case "4":
			post(webhook, telephony.Event{Type: telephony.EventCallEnd, CallID: callID})
		case "5":
			callID = "sim-" + uuid.NewString()
			fmt.Printf("New call ID: %s\n", callID)
		case "6":
			tailEvents(*serverURL)
		case "7":
			return
		default:
			fmt.Println("Unknown option")
		}
	}
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		return ""
	}
	return in.Text()
}

func transcription(callID, text string, ch telephony.Channel) telephony.Event {
	return telephony.Event{
		Type:          telephony.EventTranscription,
		CallID:        callID,
		Channel:       ch,
		Transcription: text,
	}
}

func post(webhook string, ev telephony.Event) {
	body, err := json.Marshal(ev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal event: %v\n", err)
		return
	}

	req, err := http.NewRequest("POST", webhook, bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "create request: %v\n", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpc.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "send event: %v\n", err)
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	fmt.Printf("Sent %s (HTTP %d)\n", ev.Type, resp.StatusCode)
}

// tailEvents streams the server's debug event feed until interrupted
// by the connection closing or an error.
func tailEvents(serverURL string) {
	wsURL := strings.TrimSuffix(serverURL, "/") + "/ws/events"
	wsURL = strings.Replace(wsURL, "http://", "ws://", 1)
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect event feed: %v\n", err)
		return
	}
	defer conn.Close()

	fmt.Println("Tailing event feed (Ctrl+C to quit)...")
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			fmt.Fprintf(os.Stderr, "event feed closed: %v\n", err)
			return
		}
		fmt.Printf("event: %s\n", msg)
	}
}

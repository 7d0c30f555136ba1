// inview-follow is a headless mirror client: it connects to a running
// inview-tui mirror and prints section visibility transitions to stdout.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rawjson/use-in-view/internal/remote"
)

const (
	reconnectBaseDelay = 1 * time.Second
	reconnectMaxDelay  = 30 * time.Second
)

func main() {
	url := flag.String("url", "ws://127.0.0.1:8080/ws", "WebSocket URL of the visibility mirror")
	token := flag.String("token", "", "Auth token (if the mirror requires one)")
	flag.Parse()

	target := *url
	if *token != "" {
		target += "?token=" + *token
	}

	delay := reconnectBaseDelay
	for {
		if err := follow(target); err != nil {
			log.Printf("connection lost: %v (retry in %v)", err, delay)
		}
		time.Sleep(delay)
		delay = min(delay*2, reconnectMaxDelay)
	}
}

// follow reads one connection until it drops, tracking visibility state
// and printing transitions.
func follow(url string) error {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("connected to %s", url)

	var order []string
	state := make(map[string]bool)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var env remote.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			continue
		}

		switch env.Type {
		case remote.MsgSnapshot:
			var snap remote.SnapshotPayload
			if err := json.Unmarshal(env.Payload, &snap); err != nil {
				continue
			}
			order = snap.Targets
			state = snap.Visibility
			printState(order, state)

		case remote.MsgDelta:
			var delta remote.DeltaPayload
			if err := json.Unmarshal(env.Payload, &delta); err != nil {
				continue
			}
			for id, v := range delta.Changes {
				if state[id] == v {
					continue
				}
				state[id] = v
				if v {
					fmt.Printf("→ %s entered view\n", id)
				} else {
					fmt.Printf("← %s left view\n", id)
				}
			}
		}
	}
}

func printState(order []string, state map[string]bool) {
	for _, id := range order {
		mark := " "
		if state[id] {
			mark = "●"
		}
		fmt.Printf("%s %s\n", mark, id)
	}
}

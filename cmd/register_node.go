package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strings"
)

type Node struct {
	Targets []string          `json:"targets"`
	Labels  map[string]string `json:"labels,omitempty"`
}

func getLocalIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}

	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String()
			}
		}
	}
	return ""
}

// target is the scrape address of this node. HttpPort may be ":8080" or
// "8080".
func target(ip, port string) string {
	return net.JoinHostPort(ip, strings.TrimPrefix(port, ":"))
}

// RegisterNode adds this daemon to the server's scrape targets and returns
// the node label the server assigned, or "" when registration failed.
func (s *Server) RegisterNode(ctx context.Context) string {
	ip := getLocalIP()
	if ip == "" {
		log.Println("No non-loopback address, skipping node registration")
		return ""
	}

	data, err := json.Marshal(Node{Targets: []string{target(ip, s.config.HttpPort)}})
	if err != nil {
		return ""
	}

	url := strings.TrimSuffix(s.config.ServerEndpoint, "/") + "/register_node"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return ""
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("Error registering node: %v", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Node registration failed with status %d", resp.StatusCode)
		return ""
	}

	var registeredNode Node
	if err := json.NewDecoder(resp.Body).Decode(&registeredNode); err != nil {
		return ""
	}

	log.Println("Node added to cluster")
	return registeredNode.Labels["node"]
}

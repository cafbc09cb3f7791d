package handlers

import (
	"net"
	"net/http"

	"github.com/kevinaaaquil/myb/backend/utils"
)

type ServerInfoResponse struct {
	Addrs []string `json:"addrs"`
	Port  int      `json:"port"`
}

// ServerInfo reports the LAN addresses the frontend can show so other devices can connect.
func ServerInfo(port int, addrs func() []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, ServerInfoResponse{Addrs: addrs(), Port: port})
	}
}

// LANAddrs lists non-loopback IPv4 addresses of the host's interfaces.
func LANAddrs() []string {
	addrs := []string{}
	ifaces, err := net.InterfaceAddrs()
	if err != nil {
		return addrs
	}
	for _, a := range ifaces {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipnet.IP.To4(); ip4 != nil {
			addrs = append(addrs, ip4.String())
		}
	}
	return addrs
}

func Health(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

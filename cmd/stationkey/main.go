// Command stationkey prints the bcrypt hash to configure for a station key.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/yanqian/salinity-watch/internal/domain/station"
)

func main() {
	key := ""
	if len(os.Args) > 1 {
		key = os.Args[1]
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatalf("read key from stdin: %v", err)
		}
		key = line
	}

	hash, err := station.HashKey(strings.TrimSpace(key))
	if err != nil {
		log.Fatalf("hash station key: %v", err)
	}
	fmt.Println(hash)
}

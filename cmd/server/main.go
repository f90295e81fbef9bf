// Command server runs the sale-page editor API over HTTP. It keeps a single
// in-memory editing session; save the project JSON before stopping it.
package main

import (
	"flag"
	"log"
	"net/http"

	salepage "github.com/goliatone/go-salepage"
)

func main() {
	addr := flag.String("addr", "", "listen address (defaults to configuration)")
	shop := flag.String("shop", "", "initial shop id (defaults to configuration)")
	flag.Parse()

	cfg := salepage.DefaultConfig()
	if *shop != "" {
		cfg.DefaultShop = *shop
	}
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}

	module, err := salepage.New(cfg)
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	mux := http.NewServeMux()
	if err := module.EditorAPI().Register(mux); err != nil {
		log.Fatalf("register editor: %v", err)
	}

	logger := module.Container().LoggerProvider().GetLogger("server")
	logger.Info("editor listening", "addr", cfg.HTTP.Addr, "shop", cfg.DefaultShop)
	if err := http.ListenAndServe(cfg.HTTP.Addr, mux); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

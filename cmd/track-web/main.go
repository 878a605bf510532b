package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/wavetrack/audio"
	"github.com/lixenwraith/wavetrack/config"
	"github.com/lixenwraith/wavetrack/service"
	"github.com/lixenwraith/wavetrack/stream"
	"github.com/lixenwraith/wavetrack/wfc"
)

func main() {
	flags := config.BindFlags(flag.CommandLine)
	addr := flag.String("addr", "", "listen address (default from config)")
	sound := flag.Bool("sound", false, "play audio cues on the server host")
	flag.Parse()

	cfg, err := flags.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	dcfg, err := cfg.DriverConfig()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	driver, err := wfc.NewDriver(dcfg)
	if err != nil {
		log.Fatalf("Failed to create driver: %v", err)
	}

	server := stream.NewServer(driver, stream.Options{
		Addr:   cfg.Web.Addr,
		Update: cfg.UpdateInterval(),
		Hold:   cfg.HoldDuration(),
	})

	services := service.NewGroup()
	if *sound && cfg.Audio.Enabled {
		cues := audio.NewCues()
		server.Generator().OnOutcome(cues.PlayOutcome)
		services.Add(cues, false)
	}
	services.Add(server, *addr)

	if err := services.Start(); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	log.Printf("track-web: open http://%s/", server.Addr())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Println("track-web: shutting down")
	services.Stop()
}

package main

import (
	"log"
	"net/http"

	"github.com/rzlb/FanPhoto-v3-sub001/internal/api"
	"github.com/rzlb/FanPhoto-v3-sub001/internal/config"
	"github.com/rzlb/FanPhoto-v3-sub001/internal/db"
	"github.com/rzlb/FanPhoto-v3-sub001/internal/display"
	"github.com/rzlb/FanPhoto-v3-sub001/internal/storage"
	"github.com/rzlb/FanPhoto-v3-sub001/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := db.SeedAdmin(gdb, cfg.AdminUser, cfg.AdminPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := db.SeedDefaultEvent(gdb, cfg.DefaultEventName, cfg.DefaultEventSlug); err != nil {
		log.Fatalf("seed event: %v", err)
	}

	disk, err := storage.NewDisk(storage.DiskConfig{Root: cfg.UploadDir})
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	hub := ws.NewHub()
	notifier := display.NewNotifier()
	source := display.NewDBSource(gdb, notifier)
	registry := display.NewRegistry(source, hub)
	defer registry.Stop()

	hub.SetController(ws.EngineControls{Registry: registry})
	go hub.Run()

	handler := api.RouterHandler(api.Deps{
		GDB:       gdb,
		Disk:      disk,
		Hub:       hub,
		Notifier:  notifier,
		Registry:  registry,
		JWTSecret: []byte(cfg.JWTSecret),
		MaxUpload: cfg.MaxUploadMB << 20,
	})

	log.Printf("fanphoto listening on %s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, handler))
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gnssfix/internal/config"
	"gnssfix/internal/gps"
	"gnssfix/internal/mqtt"
	"gnssfix/internal/statusled"
	"gnssfix/internal/udp"
	"gnssfix/internal/web"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the fix daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func serve(cfg config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Printf("gnssfixd starting")

	sess := gps.New(gps.Config{
		Enable:     cfg.GPS.Enable,
		Source:     cfg.GPS.Source,
		Device:     cfg.GPS.Device,
		Baud:       cfg.GPS.Baud,
		Path:       cfg.GPS.Path,
		Loop:       cfg.GPS.Loop,
		LineDelay:  cfg.GPS.LineDelay.Std(),
		MaxSpeedMS: cfg.GPS.MaxSpeedMS,
	})
	if err := sess.Start(ctx); err != nil {
		return err
	}
	defer sess.Close()

	fixJSON := func() []byte {
		b, err := json.Marshal(sess.Status().Fix)
		if err != nil {
			return nil
		}
		return b
	}

	if cfg.UDP.Enable {
		b, err := udp.NewBroadcaster(cfg.UDP.Dest)
		if err != nil {
			return err
		}
		defer b.Close()
		log.Printf("udp dest=%s interval=%s", cfg.UDP.Dest, cfg.UDP.Interval.Std())
		go b.Run(ctx, cfg.UDP.Interval.Std(), fixJSON)
	}

	if cfg.MQTT.Enable {
		p, err := mqtt.NewPublisher(mqtt.Config{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Topic:    cfg.MQTT.Topic,
			Interval: cfg.MQTT.Interval.Std(),
		})
		if err != nil {
			return err
		}
		defer p.Close()
		log.Printf("mqtt broker=%s topic=%s", cfg.MQTT.Broker, cfg.MQTT.Topic)
		go p.Run(ctx, fixJSON)
	}

	if cfg.LED.Enable {
		led := statusled.New(statusled.Config{Enable: true, Pin: cfg.LED.Pin}, func() bool {
			return sess.Status().Fix.Valid
		})
		if err := led.Start(); err != nil {
			// A missing GPIO line should not take the daemon down.
			log.Printf("statusled unavailable: %v", err)
		} else {
			defer led.Close()
		}
	}

	var srv *http.Server
	if cfg.Web.Enable {
		srv = &http.Server{Addr: cfg.Web.Addr, Handler: web.Handler(sess)}
		log.Printf("http listening on %s", cfg.Web.Addr)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("http server stopped: %v", err)
				cancel()
			}
		}()
	}

	<-ctx.Done()
	log.Printf("gnssfixd stopping")

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}
	return nil
}

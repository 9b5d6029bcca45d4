package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

// attendpi -config={config file}

func main() {
	// read config information
	settings := initSettings()

	setupLogging(settings, settings.GetBool(sDebug))

	log.Println(">>> attendpi <<<")
	log.Printf("features: %s", strings.Join(features, ", "))
	settings.Dump()

	rt := initRuntime(settings)

	// workers: effects owns the display, the rest talk to it over channels
	startLEDController(rt)
	startEffects(rt)
	startClock(rt)
	startScanner(rt)
	startTimeWatcher(rt)

	handler := NewHandler(rt)
	svc := &statusService{}
	svc.launch(&handler, settings.GetString(sListen))

	// wait for a signal, then tell everyone to wrap up
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigs
	log.Printf("got signal %v, shutting down", sig)

	close(rt.comms.quit)
	svc.stop()
	wg.Wait()
}

package player

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// A stuck key stays stuck in the external game indefinitely, so held keys
// must be force-released even when the normal Stop path never runs. Every
// player registers here; a process signal handler sweeps the registry.

var (
	cleanupMu      sync.Mutex
	cleanupPlayers = make(map[*Player]struct{})
	cleanupOnce    sync.Once
)

func registerCleanup(p *Player) {
	cleanupMu.Lock()
	cleanupPlayers[p] = struct{}{}
	cleanupMu.Unlock()
	cleanupOnce.Do(installExitHook)
}

func unregisterCleanup(p *Player) {
	cleanupMu.Lock()
	delete(cleanupPlayers, p)
	cleanupMu.Unlock()
}

// ReleaseAllHeldKeys force-releases every key held by any live player.
// Exposed so hosts with their own shutdown paths can invoke the sweep.
func ReleaseAllHeldKeys() {
	cleanupMu.Lock()
	players := make([]*Player, 0, len(cleanupPlayers))
	for p := range cleanupPlayers {
		players = append(players, p)
	}
	cleanupMu.Unlock()

	for _, p := range players {
		p.releaseAll()
	}
}

func installExitHook() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		ReleaseAllHeldKeys()
		signal.Stop(c)
		os.Exit(1)
	}()
}

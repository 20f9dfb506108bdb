package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// StartWatcher starts watching the config file for changes
func StartWatcher(onReload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	go func() {
		defer watcher.Close()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					log.Info().Str("file", event.Name).Msg("Config file changed, reloading...")

					if err := Reload(); err != nil {
						log.Error().Err(err).Msg("Failed to reload configuration")
						continue
					}

					if onReload != nil {
						onReload()
					}
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error().Err(err).Msg("Config watcher error")
			}
		}
	}()

	if err := watcher.Add(GetPath()); err != nil {
		return err
	}

	log.Info().Str("path", GetPath()).Msg("Config file watcher started")
	return nil
}

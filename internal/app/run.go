package app

import (
	"io"
	"log"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"yashubustudio/wastesorter/vision"
	"yashubustudio/wastesorter/waste"
)

const (
	fyneAppID    = "yashubustudio.wastesorter"
	logLineLimit = 200
)

// Run loads configuration, wires the classifier and starts the desktop UI. The
// model loads in the background once the window is up.
func Run() error {
	cfg, err := waste.LoadConfig("")
	if err != nil {
		return err
	}

	a := fyneapp.NewWithID(fyneAppID)
	u := newUIState(a)
	u.logs.start()
	defer u.logs.stop()
	logger := log.New(io.MultiWriter(os.Stdout, u.logs), "", log.LstdFlags)

	if cfg.RulesPath != "" {
		if created, err := waste.WriteDefaultRules(cfg.RulesPath); err != nil {
			logger.Printf("rules file: %v", err)
		} else if created {
			logger.Printf("wrote default rules to %s", cfg.RulesPath)
		}
	}
	resolver, fromFile, err := waste.LoadResolver(cfg.RulesPath)
	if err != nil {
		logger.Printf("using built-in tables: %v", err)
	} else if fromFile {
		logger.Printf("rules loaded from %s", cfg.RulesPath)
	}

	classifier := waste.NewModelClassifier(waste.NewOrtModel(cfg.Model), cfg.MaxLabels, logger)
	defer vision.Shutdown()
	defer classifier.Close()

	svc, err := waste.NewService(classifier, resolver, cfg, logger)
	if err != nil {
		return err
	}
	u.build(svc, logger)
	u.initialize()
	u.w.ShowAndRun()
	u.stopLive()
	return nil
}

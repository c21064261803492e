package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"stature/internal/config"
	"stature/internal/knowledge"
	"stature/internal/pipeline"
	"stature/internal/quota"
	"stature/internal/reasoning"
	"stature/internal/server"
	"stature/internal/vision"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Start stature server",
	Run: func(cmd *cobra.Command, args []string) {
		runServe()
	},
}

func runServe() {
	// Credentials may live in a .env file next to the binary.
	if err := godotenv.Load(); err == nil {
		logrus.Debug("loaded environment from .env")
	}

	conf, err := config.InitConfig(configFile)
	if err != nil {
		logrus.Fatal("initConfig error, ", err.Error())
	}
	if err := conf.Validate(); err != nil {
		logrus.Fatalf("invalid config: %v", err)
	}

	kb, err := knowledge.Load(conf.KnowledgeFile)
	if err != nil {
		logrus.Fatalf("load knowledge base: %v", err)
	}
	logrus.Infof("knowledge base v%s loaded with %d tiers", kb.Version, len(kb.Tiers))

	tracker := quota.NewTracker(conf.Quota.Capacity, conf.Quota.Period())
	defer tracker.Close()
	logrus.Infof("usage tracker initialized, next reset at %s", tracker.NextBoundary().Format("15:04:05"))

	detector := vision.NewClient(vision.Config{
		Endpoint: conf.Vision.Endpoint,
		Key:      conf.Vision.Key,
		Timeout:  conf.Vision.TimeoutDuration(),
	})
	reasoner := reasoning.NewClient(reasoning.Config{
		BaseURL:     conf.Reasoning.BaseURL,
		APIKey:      conf.Reasoning.APIKey,
		Model:       conf.Reasoning.Model,
		Temperature: float32(conf.Reasoning.Temperature),
		Timeout:     conf.Reasoning.TimeoutDuration(),
	})
	pl := pipeline.New(tracker, pipeline.NewAssembler(detector), reasoner, kb)

	ctx, cancelFunc := context.WithCancel(context.Background())

	srv, err := server.NewServer(ctx, conf, pl)
	if err != nil {
		logrus.Fatalf("newServer error, %s", err.Error())
		cancelFunc()
		return
	}
	go srv.Start()

	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)

	<-termChan
	logrus.Infof("server is shutting down...")
	srv.Shutdown()
	cancelFunc()
}

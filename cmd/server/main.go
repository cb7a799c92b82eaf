package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"feedclient/pkg/api"
	"feedclient/pkg/noroff"
	"feedclient/pkg/session"
)

type Config struct {
	ServiceName string `toml:"serviceName"`

	HTTPAddr      string `toml:"httpAddr"`
	LogLevel      string `toml:"logLevel"`
	HTMLDir       string `toml:"htmlDir"`
	APIBaseURL    string `toml:"apiBaseURL"`
	SessionDBPath string `toml:"sessionDBPath"`

	KafkaAddr  string `toml:"kafkaAddr"`
	KafkaTopic string `toml:"kafkaTopic"`
	KafkaBatch int    `toml:"kafkaBatch"`
}

func main() {
	var (
		configPath string
		httpAddr   string
		logLevel   string
		htmlDir    string
		apiBaseURL string
		sessionDB  string
	)

	flag.StringVar(&configPath, "servconf", "cmd/server/config.toml", "Path to TOML config file")
	flag.StringVar(&httpAddr, "http", ":8099", "HTTP server address in the form 'host:port'.")
	flag.StringVar(&logLevel, "log", "info", "Log level: debug, info, warn, error.")
	flag.StringVar(&htmlDir, "html-dir", "ui/html", "Path to HTML templates.")
	flag.StringVar(&apiBaseURL, "api", "", "Remote API base URL (empty selects production).")
	flag.StringVar(&sessionDB, "session-db", "session.db", "Path to SQLite session database file.")
	flag.Parse()

	var cfg Config
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		log.Warnf("[server] failed to load config file %s: %v", configPath, err)
	}

	// Override config with flags if set
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if htmlDir != "" {
		cfg.HTMLDir = htmlDir
	}
	if apiBaseURL != "" {
		cfg.APIBaseURL = apiBaseURL
	}
	if sessionDB != "" {
		cfg.SessionDBPath = sessionDB
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "feedclient"
	}

	if !strings.Contains(cfg.HTTPAddr, ":") {
		log.Warn("[server] use ':' before port number, e.g. ':8080'")
	}

	switch cfg.LogLevel {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	}

	store, err := session.Open(cfg.SessionDBPath)
	if err != nil {
		log.Fatalf("[server] failed to open session store %s: %v", cfg.SessionDBPath, err)
	}
	defer store.Close()

	var kafkaWriter *kafka.Writer
	if cfg.KafkaAddr != "" && cfg.KafkaTopic != "" {
		kafkaWriter = &kafka.Writer{
			Addr:      kafka.TCP(cfg.KafkaAddr),
			Topic:     cfg.KafkaTopic,
			BatchSize: cfg.KafkaBatch,
		}
		if err := createTopic(kafkaWriter.Addr.String(), kafkaWriter.Topic); err != nil {
			log.Warnf("[server] failed to create Kafka topic: %v", err)
		}
	} else {
		log.Warnf("[server] kafka was not configured, activity logs will not be sent to Kafka")
	}

	client := noroff.New(cfg.APIBaseURL)
	a := api.New(cfg.ServiceName, client, store, cfg.HTMLDir, kafkaWriter)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: a.Router(),
	}

	go func() {
		log.Infof("[server] starting on %v, remote API %v", cfg.HTTPAddr, client.BaseURL())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("[server] failed to start: %v", err)
			return
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownRelease()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("[server] HTTP server shutdown error: %v", err)
	} else {
		log.Info("[server] HTTP server shut down gracefully")
	}
}

func createTopic(broker, topic string) error {
	conn, err := kafka.DialContext(context.Background(), "tcp", broker)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
}

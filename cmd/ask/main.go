package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/josinaldojr/leopard-cat-rag/internal/app"
	"github.com/josinaldojr/leopard-cat-rag/internal/config"
	"github.com/josinaldojr/leopard-cat-rag/internal/logging"
)

func main() {
	questionFlag := flag.String("q", "", "question to ask; read from stdin when empty")
	flag.Parse()

	cfg := config.Load()

	logger, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	question := *questionFlag
	if question == "" {
		fmt.Fprintln(os.Stderr, "請輸入問題：")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			logger.Fatal("failed to read question", zap.Error(err))
		}
		question = strings.TrimRight(line, "\r\n")
	}

	ctx := context.Background()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to init pipeline", zap.Error(err))
	}
	defer a.Close()

	answer, err := a.Service.Query(ctx, question)
	if err != nil {
		logger.Error("query failed", zap.Error(err))
		a.Close()
		_ = logger.Sync()
		os.Exit(1)
	}

	fmt.Println(answer)
}

package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/nitrictech/go-sdk/resources"
	"github.com/sirupsen/logrus"

	"github.com/asalkeld/commitpolice/bot"
	"github.com/asalkeld/commitpolice/notify"
	"github.com/asalkeld/commitpolice/status"
)

const (
	header = "                                 _ _              _ _\n" +
		"  ___ ___  _ __ ___  _ __ ___ (_) |_ _ __   ___ | (_) ___ ___\n" +
		" / __/ _ \\| '_ ` _ \\| '_ ` _ \\| | __| '_ \\ / _ \\| | |/ __/ _ \\\n" +
		"| (_| (_) | | | | | | | | | | | | |_| |_) | (_) | | | (_|  __/\n" +
		" \\___\\___/|_| |_| |_|_| |_| |_|_|\\__| .__/ \\___/|_|_|\\___\\___|\n" +
		"                                    |_|"
	Version = "0.0.1"
)

func main() {
	fmt.Println(header)
	fmt.Println("Version", Version)
	fmt.Println("")

	logger := logrus.New()

	if err := godotenv.Load(); err != nil {
		logger.Info(".env not found, using the process environment")
	}

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatalln(err)
	}

	bucket, err := resources.NewBucket("commit-status", resources.BucketReading, resources.BucketWriting)
	if err != nil {
		panic(err)
	}

	store := status.NewStore(bucket.File(cfg.StatusKey), cfg.TrackedUser)

	// The recorder's webhook policy accepts 200 or 204, the checker's only
	// 204.
	var recordNotify notify.Notifier = notify.NewDiscord(cfg.WebhookURL, cfg.BotName)
	var checkNotify notify.Notifier = notify.NewDiscord(cfg.WebhookURL, cfg.BotName, notify.Strict())

	if cfg.SlackToken != "" && cfg.SlackChannel != "" {
		mirror := notify.NewSlack(cfg.SlackToken, cfg.SlackChannel)
		recordNotify = &notify.Fanout{Primary: recordNotify, Mirrors: []notify.Notifier{mirror}}
		checkNotify = &notify.Fanout{Primary: checkNotify, Mirrors: []notify.Notifier{mirror}}
	}

	recorder := bot.NewRecorder(store, recordNotify, cfg.TrackedUser, logger)

	checker, err := bot.NewChecker(store, checkNotify, cfg.TrackedUser, cfg.CheckSchedules, logger)
	if err != nil {
		logger.Fatalln(err)
	}

	cpApi := resources.NewApi("commitpolice")
	cpApi.Post("/commits", recorder.Handler)
	cpApi.Get("/check", checker.Handler)

	err = resources.NewSchedule("status checks", "@every 5mins", checker.ScheduleHandler)
	if err != nil {
		panic(err)
	}

	err = resources.Run()
	if err != nil {
		panic(err)
	}
}

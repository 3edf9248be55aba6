package main

import (
	"context"
	"flag"
	"time"

	"volumeapi/internal/config"
	"volumeapi/internal/volume"

	"github.com/sirupsen/logrus"
)

func ptr[T any](v T) *T { return &v }

var samples = []volume.Fields{
	{
		Title: ptr("Dune"), Author: ptr("Frank Herbert"), PublishedYear: ptr(1965),
		Genre: &[]string{"Science Fiction", "Adventure"}, Language: ptr("English"), Country: ptr("United States"),
		Rating: ptr(4.6), Summary: ptr("A noble family becomes embroiled in a war over the desert planet Arrakis."),
	},
	{
		Title: ptr("Emma"), Author: ptr("Jane Austen"), PublishedYear: ptr(1815),
		Genre: &[]string{"Classic", "Romance"}, Language: ptr("English"), Country: ptr("United Kingdom"),
		Rating: ptr(4.0),
	},
	{
		Title: ptr("One Hundred Years of Solitude"), Author: ptr("Gabriel García Márquez"), PublishedYear: ptr(1967),
		Genre: &[]string{"Magical Realism"}, Language: ptr("Spanish"), Country: ptr("Colombia"),
		Rating: ptr(4.5),
	},
	{
		Title: ptr("The Left Hand of Darkness"), Author: ptr("Ursula K. Le Guin"), PublishedYear: ptr(1969),
		Genre: &[]string{"Science Fiction"}, Language: ptr("English"), Country: ptr("United States"),
		Rating: ptr(4.2),
	},
	{
		Title: ptr("Children of Dune"), Author: ptr("Frank Herbert"), PublishedYear: ptr(1976),
		Genre: &[]string{"Science Fiction"}, Language: ptr("English"), Country: ptr("United States"),
		Rating: ptr(4.0),
	},
}

func main() {
	times := flag.Int("times", 1, "How many copies of the sample set to insert")
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if cfg.StoreDriver == config.DriverMemory {
		logrus.Fatal("seeding the memory store has no effect; pick mongo or postgres")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repo, err := volume.Open(ctx, cfg)
	if err != nil {
		logrus.Fatalf("open %s store: %v", cfg.StoreDriver, err)
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			logrus.WithError(err).Warn("close store")
		}
	}()

	n, err := seed(ctx, volume.NewService(repo), *times)
	if err != nil {
		logrus.Fatalf("seed volumes: %v", err)
	}
	logrus.Infof("Successfully inserted %d volumes!", n)
}

func seed(ctx context.Context, svc *volume.Service, times int) (int, error) {
	n := 0
	for i := 0; i < times; i++ {
		for _, f := range samples {
			v, err := svc.Add(ctx, f)
			if err != nil {
				return n, err
			}
			n++
			logrus.WithFields(logrus.Fields{"id": v.ID, "title": *v.Title}).Debug("inserted volume")
		}
	}
	return n, nil
}

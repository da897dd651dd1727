package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/domain"
	mongorepo "github.com/sngm3741/feedbackpro/api/internal/infrastructure/mongo"
	"github.com/sngm3741/feedbackpro/api/internal/logging"
)

type seedOptions struct {
	envName         string
	count           int
	withImages      float64
	dropCollections bool
	randomSeed      int64
}

// seedEnv is the slice of the API configuration the seeder needs. JWT secrets are not required here.
type seedEnv struct {
	MongoURI           string `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	MongoDatabase      string `env:"MONGO_DB" env-default:"feedbackpro"`
	FeedbackCollection string `env:"FEEDBACK_COLLECTION" env-default:"feedback_submissions"`
	ContactEmailDomain string `env:"CONTACT_EMAIL_DOMAIN" env-default:"gmail.com"`
}

func main() {
	opts := parseFlags()

	env, err := loadEnv(opts.envName)
	if err != nil {
		log.Fatalf("環境変数の読み込みに失敗しました: %v", err)
	}

	zapLogger, err := logging.NewZap("info")
	if err != nil {
		log.Fatalf("ロガーの初期化に失敗: %v", err)
	}
	logger := logging.New(zapLogger)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(env.MongoURI))
	if err != nil {
		logger.Fatal(ctx, "MongoDB 接続に失敗しました", zap.Error(err))
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(env.MongoDatabase)

	if opts.dropCollections {
		if err := db.Collection(env.FeedbackCollection).Drop(ctx); err != nil {
			logger.Fatal(ctx, "コレクション削除に失敗しました", zap.Error(err))
		}
		logger.Info(ctx, "既存コレクションを削除しました", zap.String("collection", env.FeedbackCollection))
	}

	repo := mongorepo.NewFeedbackRepository(db, env.FeedbackCollection)
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Fatal(ctx, "インデックス作成に失敗しました", zap.Error(err))
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))
	records := generateSubmissions(rng, opts, env.ContactEmailDomain, time.Now())

	for i := range records {
		if err := repo.Create(ctx, &records[i]); err != nil {
			logger.Fatal(ctx, "フィードバックの挿入に失敗しました", zap.Int("index", i), zap.Error(err))
		}
	}

	logger.Info(ctx, "Seed 完了",
		zap.Int("feedback", len(records)),
		zap.String("database", env.MongoDatabase),
		zap.String("env", opts.envName),
		zap.Int64("seed", opts.randomSeed),
	)
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envName, "env", "local", "backend/env 内の env ファイル名 (例: local, staging)")
	flag.IntVar(&opts.count, "count", 50, "生成するフィードバック件数")
	flag.Float64Var(&opts.withImages, "images", 0.3, "画像キーを付与する割合 (0-1)")
	flag.BoolVar(&opts.dropCollections, "drop", true, "既存コレクションを削除してから投入する")
	defaultSeed := time.Now().UnixNano()
	flag.Int64Var(&opts.randomSeed, "seed", defaultSeed, "乱数シード（再現用）")
	flag.Parse()

	if opts.count <= 0 {
		log.Fatal("count は 1 以上を指定してください")
	}
	if opts.withImages < 0 {
		opts.withImages = 0
	}
	if opts.withImages > 1 {
		opts.withImages = 1
	}
	return opts
}

// loadEnv reads backend/env/<name>.env when present and falls back to the process environment.
func loadEnv(envName string) (seedEnv, error) {
	var env seedEnv
	path := filepath.Join("..", "env", fmt.Sprintf("%s.env", envName))
	if err := cleanenv.ReadConfig(path, &env); err != nil {
		if err := cleanenv.ReadEnv(&env); err != nil {
			return seedEnv{}, err
		}
	}
	env.ContactEmailDomain = strings.TrimPrefix(strings.TrimSpace(env.ContactEmailDomain), "@")
	return env, nil
}

var (
	firstNames  = []string{"Aiko", "Ben", "Chloe", "Daniel", "Emi", "Farah", "George", "Hana", "Isaac", "Julia", "Kenji", "Lena"}
	lastNames   = []string{"Tanaka", "Smith", "Garcia", "Nguyen", "Ito", "Brown", "Kim", "Sato", "Lopez", "Moore"}
	likedMost   = []string{"Quick turnaround", "Friendly staff", "Clear pricing", "Attention to detail", "Tidy work area", "Kept me updated"}
	suggestions = []string{"", "", "Send a reminder the day before", "Offer weekend slots", "Share photos of progress", "Shorter wait on the phone"}
	recommend   = []string{"Yes", "Absolutely", "Probably", "Not sure", "No"}
)

func generateSubmissions(rng *rand.Rand, opts seedOptions, emailDomain string, now time.Time) []domain.Submission {
	ratings := domain.ServiceRatingValues()
	out := make([]domain.Submission, 0, opts.count)
	for i := 0; i < opts.count; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]

		submitted := now.AddDate(0, 0, -rng.Intn(120))
		experienced := submitted.AddDate(0, 0, -rng.Intn(14))

		s := domain.Submission{
			Name:                first + " " + last,
			Contact:             randomContact(rng, first, last, emailDomain),
			DateOfExperience:    domain.CalendarDateOf(experienced, time.UTC),
			DateOfSubmission:    domain.CalendarDateOf(submitted, time.UTC),
			OverallExperience:   domain.OverallRating(1 + rng.Intn(5)),
			QualityOfService:    domain.ServiceRating(ratings[rng.Intn(len(ratings))]),
			Timeliness:          domain.ServiceRating(ratings[rng.Intn(len(ratings))]),
			Professionalism:     domain.ServiceRating(ratings[rng.Intn(len(ratings))]),
			CommunicationEase:   domain.ServiceRating(ratings[rng.Intn(len(ratings))]),
			LikedMost:           likedMost[rng.Intn(len(likedMost))],
			Suggestions:         suggestions[rng.Intn(len(suggestions))],
			WouldRecommend:      recommend[rng.Intn(len(recommend))],
			PermissionToPublish: rng.Intn(2) == 0,
			CanContactAgain:     rng.Intn(3) > 0,
		}
		if rng.Float64() < opts.withImages {
			s.BeforeImageKey = domain.BlobKey(fmt.Sprintf("before_seed-%04d_photo.jpg", i))
			s.AfterImageKey = domain.BlobKey(fmt.Sprintf("after_seed-%04d_photo.jpg", i))
		}
		out = append(out, s)
	}
	return out
}

// randomContact produces either a mailbox on the accepted domain or a 10 digit phone number.
func randomContact(rng *rand.Rand, first, last, emailDomain string) domain.Contact {
	if rng.Intn(2) == 0 {
		var b strings.Builder
		for i := 0; i < 10; i++ {
			b.WriteByte(byte('0' + rng.Intn(10)))
		}
		return domain.Contact(b.String())
	}
	local := strings.ToLower(first + "." + last)
	return domain.Contact(fmt.Sprintf("%s%d@%s", local, rng.Intn(100), emailDomain))
}

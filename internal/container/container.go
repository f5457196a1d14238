// Package container shares constructed infrastructure singletons across
// packages so the router can auto-wire feature modules at startup. All
// setters run once in main before any module is built; nothing here is
// mutated afterwards.
package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/KhalidTheCoder/scarlet-aid-server/config"
	"github.com/KhalidTheCoder/scarlet-aid-server/pkg/events"
	"github.com/KhalidTheCoder/scarlet-aid-server/pkg/identity"
)

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client
	esClient    *elasticsearch.Client
	verifier    identity.Verifier
	publisher   *events.Publisher
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }

func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }

func SetPGPool(p *pgxpool.Pool) { pgPool = p }
func GetPGPool() *pgxpool.Pool  { return pgPool }

func SetRedis(r *redis.Client) { redisClient = r }
func GetRedis() *redis.Client  { return redisClient }

func SetGCS(s *storage.Client) { gcsClient = s }
func GetGCS() *storage.Client  { return gcsClient }

func SetES(c *elasticsearch.Client) { esClient = c }
func GetES() *elasticsearch.Client  { return esClient }

func SetVerifier(v identity.Verifier) { verifier = v }
func GetVerifier() identity.Verifier  { return verifier }

func SetPublisher(p *events.Publisher) { publisher = p }
func GetPublisher() *events.Publisher  { return publisher }

package conf

import (
	"reflect"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/log"
	"github.com/txix-open/isp-kit/rc/schema"
	"github.com/txix-open/jsonschema"
)

func init() {
	schema.CustomGenerators.Register("logLevel", func(field reflect.StructField, s *jsonschema.Schema) {
		s.Type = "string"
		s.Enum = []any{"debug", "info", "error", "fatal"}
	})
}

type Remote struct {
	Redis                           *Redis      `schema:"Настройки Redis,хранилище счётчиков суточных ограничений и пропускной способности"`
	Http                            Http        `schema:"Настройки HTTP"`
	Logging                         Logging     `schema:"Настройки логирования"`
	Gemini                          Gemini      `schema:"Настройки провайдера,модели пробуются по порядку до первого успешного ответа"`
	DailyLimit                      DailyLimit  `schema:"Настройки суточного ограничения,сбрасывается раз в сутки в 00:00"`
	Throttling                      *Throttling `schema:"Настройки пропускной способности"`
	Caching                         Caching     `schema:"Настройки кеширования ответов"`
	EnableClientRequestIdForwarding bool        `schema:"Включить проброс клиентского x-request-id"`
}

type Http struct {
	MaxRequestBodySizeInMb int64 `valid:"required" schema:"Максимальная длинна тела запроса,в мегабайтах"`
}

type Logging struct {
	LogLevel               log.Level `schemaGen:"logLevel" schema:"Уровень логирования,логирование запросов осуществляется на уровне debug"`
	RequestLogEnable       bool      `schema:"Включить логирование запросов"`
	BodyLogEnable          bool      `schema:"Включить логирование тел запросов и ответов,должно быть включено логирование запросов"`
	ForceUnescapingUnicode bool      `schema:"Принудительно декодировать escape-последовательности в логах,упрощает чтение арабских и урду текстов в логах"`
}

type Gemini struct {
	ApiKey              string   `valid:"required" schema:"API ключ,передаётся query-параметром key"`
	UrlTemplate         string   `schema:"Шаблон URL модели,%s заменяется на идентификатор модели; по умолчанию официальный endpoint generateContent"`
	Models              []string `valid:"required" schema:"Список моделей,пробуются строго по порядку, выигрывает первый успешный ответ"`
	AttemptTimeoutInSec int      `schema:"Таймаут одной попытки,в секундах, по умолчанию 15"`
}

type DailyLimit struct {
	RequestsPerDay int64 `valid:"required" schema:"Запросов в сутки,на одно устройство"`
}

type Throttling struct {
	RequestsPerSeconds int `valid:"required,range(1|1000)" schema:"Запросов в секунду,на одно устройство, не конфликтует с суточным ограничением"`
}

type Caching struct {
	AnswerInSec int `schema:"Время кеширования ответов,в секундах, 0 отключает кеширование"`
}

type Redis struct {
	Address  string         `schema:"Адрес,обязателено, если sentinel не указан"`
	Username string         `schema:"Имя пользовтаеля"`
	Password string         `schema:"Пароль"`
	Sentinel *RedisSentinel `schema:"Настройки sentinel,обязательно, если address не указан"`
}

type RedisSentinel struct {
	Addresses  []string `valid:"required" schema:"Адреса нод в кластере"`
	MasterName string   `valid:"required" schema:"Имя мастера"`
	Username   string   `schema:"Имя пользовтаеля в sentinel"`
	Password   string   `schema:"Пароль в sentinel"`
}

func (r Remote) Validate() error {
	if r.Redis == nil {
		return errors.New("redis is required for daily limit and throttling counters")
	}
	if r.Redis.Sentinel == nil && r.Redis.Address == "" {
		return errors.New("invalid redis config. sentinel or address are required")
	}
	if len(r.Gemini.Models) == 0 {
		return errors.New("at least one model is required")
	}
	return nil
}

package common

import (
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	snowflakeNode *snowflake.Node
	nodeOnce      sync.Once
)

func initNode() {
	rand.Seed(time.Now().UnixNano())
	node, err := snowflake.NewNode(int64(rand.Intn(1023)))
	if err != nil {
		panic(err)
	}
	snowflakeNode = node
}

// UUIDint64 returns a cluster-unique int64 id.
func UUIDint64() int64 {
	nodeOnce.Do(initNode)
	return snowflakeNode.Generate().Int64()
}

// MakeDir creates dir if it does not exist.
func MakeDir(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		_ = os.MkdirAll(path, 0o755)
	}
}

// FileExists checks a path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IfEmptyStr returns defval when src is empty.
func IfEmptyStr(src, defval string) string {
	if src == "" {
		return defval
	}
	return src
}

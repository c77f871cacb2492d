// token 为联调与运维签发或吊销 JWT，密钥与签发方读取 configs/config.yaml
package main

import (
	"PrintDungeon/internal/api/config"
	"PrintDungeon/internal/pkg/consts"
	"PrintDungeon/internal/pkg/redis"
	"PrintDungeon/internal/pkg/security"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

func main() {
	uid := flag.String("uid", "", "user id carried in the token")
	roles := flag.String("roles", "", "comma separated roles, e.g. admin,moderator")
	revoke := flag.String("revoke", "", "token to revoke instead of minting a new one")
	flag.Parse()

	if err := config.LoadConfig(); err != nil {
		fail(err)
	}
	cfg := config.Cfg

	if *revoke != "" {
		if err := revokeToken(cfg, *revoke); err != nil {
			fail(err)
		}
		fmt.Println("revoked")
		return
	}

	if *uid == "" {
		flag.Usage()
		os.Exit(2)
	}

	var roleList []string
	for _, r := range strings.Split(*roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roleList = append(roleList, r)
		}
	}

	token, err := security.NewSigner(cfg.JWT).GenerateToken(*uid, roleList)
	if err != nil {
		fail(err)
	}
	fmt.Println(token)
}

// revokeToken 吊销记录保留到 Token 自然过期
func revokeToken(cfg *config.Config, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	if err = redis.InitRedis(cfg.Redis); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return redis.SetWithExpiration(ctx, consts.TokenRevokedKeyPrefix+signature, "1", cfg.JWT.Expiration)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

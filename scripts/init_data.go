//go:build ignore

// init_data.go

package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jacl-coder/LudusVitae-Server/config"
	"github.com/jacl-coder/LudusVitae-Server/internal/catalog"
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
	"github.com/jacl-coder/LudusVitae-Server/pkg/db"
)

func main() {
	// 解析命令行参数
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	dataType := flag.String("type", "all", "初始化数据类型 (accounts, all)")
	flag.Parse()

	// 加载配置
	if err := config.LoadConfig(*configPath); err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化数据库连接
	if err := db.InitPostgres(); err != nil {
		log.Fatalf("初始化PostgreSQL失败: %v", err)
	}
	defer db.Close()

	// 初始化数据库表
	if err := db.InitAllTables(); err != nil {
		log.Fatalf("初始化数据库表失败: %v", err)
	}
	log.Println("✓ 数据库表初始化完成")

	// 根据类型初始化数据
	switch *dataType {
	case "accounts":
		if err := initDemoAccounts(); err != nil {
			log.Fatalf("初始化演示账号失败: %v", err)
		}
		log.Println("演示账号初始化完成")
	case "all":
		log.Println("开始初始化所有数据...")

		if err := initDemoAccounts(); err != nil {
			log.Fatalf("初始化演示账号失败: %v", err)
		}
		log.Println("✓ 演示账号初始化完成")

		log.Println("🎉 所有数据初始化完成！")
	default:
		log.Fatalf("未知的数据类型: %s", *dataType)
	}
}

// initDemoAccounts 初始化演示账号及其存档
func initDemoAccounts() error {
	log.Println("正在初始化演示账号...")

	// 检查是否已有演示账号
	var count int
	err := db.DB.QueryRow("SELECT COUNT(*) FROM players WHERE username LIKE 'demo%'").Scan(&count)
	if err != nil {
		return err
	}

	if count > 0 {
		log.Printf("已有 %d 个演示账号，跳过初始化", count)
		return nil
	}

	today := time.Now().Format("2006-01-02")

	// 创建演示账号
	demoAccounts := []struct {
		username string
		password string
		email    string
		state    *models.GameState
	}{
		{
			username: "demo_novice",
			password: "password123",
			email:    "novice@ludusvitae.dev",
			state:    catalog.InitialState(today),
		},
		{
			username: "demo_veteran",
			password: "password123",
			email:    "veteran@ludusvitae.dev",
			state:    veteranState(today),
		},
	}

	// 插入演示账号与初始存档
	for _, account := range demoAccounts {
		hashedPassword := hashPassword(account.password)

		var playerID int64
		err := db.DB.QueryRow(`
			INSERT INTO players (username, password, email, created_at, updated_at)
			VALUES ($1, $2, $3, NOW(), NOW())
			RETURNING id
		`, account.username, hashedPassword, account.email).Scan(&playerID)
		if err != nil {
			return err
		}

		raw, err := json.Marshal(account.state)
		if err != nil {
			return err
		}
		_, err = db.DB.Exec(`
			INSERT INTO saves (player_id, state, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (player_id) DO UPDATE SET state = $2, updated_at = NOW()
		`, playerID, raw)
		if err != nil {
			return err
		}

		log.Printf("✓ 创建演示账号: %s (ID: %d)", account.username, playerID)
	}

	return nil
}

// veteranState 构造一份有进度的存档，便于演示排行榜与统计接口
func veteranState(today string) *models.GameState {
	state := catalog.InitialState(today)
	state.User.Name = "Veteran"
	state.User.Level = 6
	state.User.XP = 2100
	state.User.Credits = 840
	state.User.Streak = 12
	state.User.Attributes[models.StatStrength] = 14
	state.User.Attributes[models.StatIntelligence] = 18
	state.User.Achievements = append(state.User.Achievements, "ach_early_bird")
	state.User.SubSkills = append(state.User.SubSkills, models.SubSkill{
		ID:         uuid.New().String(),
		Name:       "Python",
		ParentStat: string(models.StatIntelligence),
		Level:      4,
		XP:         120,
	})
	state.Bible = "Discipline equals freedom. Train the body, sharpen the mind."
	state.Journal = append(state.Journal, models.JournalEntry{
		ID:      uuid.New().String(),
		Date:    today,
		Content: "Cleared the morning protocol before sunrise. Momentum is building.",
	})
	return state
}

// hashPassword 简单的密码哈希函数（实际应用中应使用更安全的方法）
func hashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hash[:])
}

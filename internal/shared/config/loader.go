package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// LoadYAML 加载 yml 配置并反序列化到 out，同时开启热更新监听。
//
// 约定：
// 1) 传入 cfgName（相对/绝对路径）则优先使用；
// 2) 否则从当前目录开始向上查找 cfgName（兼容从 cmd/xxx 目录启动）。
func LoadYAML(cfgName string, out any) {
	path := resolve(cfgName)
	if !fileExist(path) {
		panic(fmt.Sprintf("config file not exist, configPath=%v", path))
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.OnConfigChange(func(e fsnotify.Event) {
		// 热更新失败保留旧配置，只在下次变更时重试
		_ = v.Unmarshal(out)
	})
	v.WatchConfig()

	if err := v.ReadInConfig(); err != nil {
		panic(err)
	}
	if err := v.Unmarshal(out); err != nil {
		panic(err)
	}
}

// LoadJSON 加载 JSON 参考数据（城池表等游戏配置）。
func LoadJSON(path string, out any) {
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("load json config failed, path=%v err=%v", path, err))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		panic(fmt.Sprintf("parse json config failed, path=%v err=%v", path, err))
	}
}

func resolve(cfgName string) string {
	if filepath.IsAbs(cfgName) {
		return cfgName
	}
	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return findUpward(curDir, cfgName)
}

func findUpward(startDir, relPath string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, relPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not exist, searched " + relPath + " from: " + startDir)
		}
		dir = parent
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}

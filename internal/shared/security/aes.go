package security

import (
	"github.com/go-think/openssl"
)

// 客户端和服务端约定：ws 帧体使用 AES-CBC，key 同时作为 iv（握手时下发）。

func AesCBCEncrypt(data, key, iv []byte, padding string) ([]byte, error) {
	return openssl.AesCBCEncrypt(data, key, iv, padding)
}

func AesCBCDecrypt(data, key, iv []byte, padding string) ([]byte, error) {
	return openssl.AesCBCDecrypt(data, key, iv, padding)
}

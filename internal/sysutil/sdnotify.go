package sysutil

import (
	"github.com/coreos/go-systemd/v22/daemon"
	"go.uber.org/zap"
)

// NotifyReady 通知 systemd 服务已就绪, 不在 systemd 下运行时什么也不做
func NotifyReady() {
	notify(daemon.SdNotifyReady)
}

func NotifyStopping() {
	notify(daemon.SdNotifyStopping)
}

func notify(state string) {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		Log.Warn("sd_notify failed", zap.String("state", state), zap.Error(err))
		return
	}
	if sent {
		Log.Debug("sd_notify sent", zap.String("state", state))
	}
}

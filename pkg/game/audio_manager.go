package game

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// SampleRate 音频上下文采样率
const SampleRate = 44100

// AudioManager 音效管理器
//
// 职责：
//   - 按文件名（如 "shoot3.wav"）从音效目录加载并缓存解码后的 PCM
//   - 每次播放创建独立的播放器，同一音效可以重叠播放
//   - 应用 SettingsManager 中的开关和音量
//
// 即发即弃：找不到或解码失败的音效只警告一次，之后静默跳过
type AudioManager struct {
	context         *audio.Context   // 可为 nil（静音模式）
	soundDir        string           // 音效目录
	settingsManager *SettingsManager // 可为 nil

	mu      sync.Mutex
	pcm     map[string][]byte // 文件名 -> 解码后的 PCM；nil 表示加载失败
	playing []*audio.Player   // 仍在播放的播放器，播完后回收
}

// NewAudioManager 创建音效管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，nil 时所有播放请求直接返回 false
//   - soundDir: 音效文件目录
//   - sm: 设置管理器，可为 nil
func NewAudioManager(ctx *audio.Context, soundDir string, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		soundDir:        soundDir,
		settingsManager: sm,
		pcm:             make(map[string][]byte),
	}
}

// PlaySound 播放音效
// 返回是否真的开始播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.context == nil || !am.soundEnabled() {
		return false
	}

	am.mu.Lock()
	defer am.mu.Unlock()

	data := am.load(soundID)
	if data == nil {
		return false
	}

	am.reap()
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.getSoundVolume())
	player.Play()
	am.playing = append(am.playing, player)
	return true
}

// Preload 预加载音效，返回成功加载的数量
func (am *AudioManager) Preload(soundIDs []string) int {
	am.mu.Lock()
	defer am.mu.Unlock()

	loaded := 0
	for _, id := range soundIDs {
		if am.load(id) != nil {
			loaded++
		}
	}
	log.Debugf("[AudioManager] Preloaded %d/%d sounds from %s", loaded, len(soundIDs), am.soundDir)
	return loaded
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.getSoundVolume()
}

// load 读取并解码音效（调用方持有锁）
func (am *AudioManager) load(soundID string) []byte {
	if data, ok := am.pcm[soundID]; ok {
		return data
	}
	if am.context == nil {
		return nil
	}

	data, err := am.decode(soundID)
	if err != nil {
		log.Warnf("[AudioManager] Sound %s unavailable: %v", soundID, err)
		am.pcm[soundID] = nil
		return nil
	}
	am.pcm[soundID] = data
	return data
}

func (am *AudioManager) decode(soundID string) ([]byte, error) {
	path := filepath.Join(am.soundDir, soundID)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	reader := bytes.NewReader(raw)
	rate := am.context.SampleRate()

	var stream io.Reader
	switch ext := strings.ToLower(filepath.Ext(soundID)); ext {
	case ".wav":
		s, err := wav.DecodeWithSampleRate(rate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV %s: %w", path, err)
		}
		stream = s
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(rate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG %s: %w", path, err)
		}
		stream = s
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(rate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 %s: %w", path, err)
		}
		stream = s
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .ogg, .mp3)", ext)
	}

	return io.ReadAll(stream)
}

// reap 回收已经播完的播放器（调用方持有锁）
func (am *AudioManager) reap() {
	alive := am.playing[:0]
	for _, p := range am.playing {
		if p.IsPlaying() {
			alive = append(alive, p)
			continue
		}
		_ = p.Close()
	}
	am.playing = alive
}

func (am *AudioManager) soundEnabled() bool {
	if am.settingsManager == nil {
		return true
	}
	return am.settingsManager.GetSettings().SoundEnabled
}

func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return DefaultSettings().SoundVolume
}

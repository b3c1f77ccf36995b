package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/geowars.yaml": &fstest.MapFile{Data: []byte("playerSpeed: 1\n")},
	}
}

// reset 重置包状态，避免影响其他测试
func reset() {
	dataFS = nil
	initialized = false
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	reset()
	defer reset()

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	reset()

	_, err := ReadFile("data/geowars.yaml")
	if !errors.Is(err, errNotInitialized) {
		t.Errorf("Expected not-initialized error, got %v", err)
	}
	if Exists("data/geowars.yaml") {
		t.Error("Exists() must be false before Init()")
	}
}

// TestReadFile 测试读取嵌入文件（含路径标准化）
func TestReadFile(t *testing.T) {
	reset()
	defer reset()
	Init(testFS())

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "plain path", path: "data/geowars.yaml", want: "playerSpeed: 1\n"},
		{name: "dot prefix", path: "./data/geowars.yaml", want: "playerSpeed: 1\n"},
		{name: "unknown prefix", path: "assets/geowars.yaml", wantErr: true},
		{name: "missing file", path: "data/missing.yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && string(data) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, data, tt.want)
			}
		})
	}
}

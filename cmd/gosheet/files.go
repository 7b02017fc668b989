package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileylov/gosheet/internal/sheet"
)

type dirLoadedMsg struct {
	items []sheet.Item
	err   error
}

func loadDir(dir string, siUnit bool) tea.Cmd {
	return func() tea.Msg {
		items, err := listDir(dir, siUnit)
		return dirLoadedMsg{items, err}
	}
}

// listDir turns the entries of dir into sheet rows. Entries that vanish
// between the read and the stat are skipped.
func listDir(dir string, siUnit bool) ([]sheet.Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	items := make([]sheet.Item, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		var detail string
		if !info.IsDir() {
			detail = readableSize(info.Size(), siUnit) + "  " + info.ModTime().Format("2006-01-02 15:04:05")
		}
		items = append(items, sheet.Item{
			Icon:   itemIcon(info),
			Title:  e.Name(),
			Detail: detail,
			Value:  filepath.Join(dir, e.Name()),
		})
	}
	return items, nil
}

func itemIcon(info os.FileInfo) string {
	itemType := "📄"
	if info.IsDir() {
		return "📂"
	}
	if info.Mode().Perm()&0111 != 0 {
		itemType = "⚙️"
	}
	switch filepath.Ext(info.Name()) {
	case ".zip", ".gz", ".7z":
		itemType = "📦"
	case ".png", ".jpg", ".webp", ".jpeg":
		itemType = "🖼️"
	case ".mp4", ".mov":
		itemType = "📹"
	}
	return itemType
}

func readableSize(bytes int64, siUnit bool) string {
	if bytes == 0 {
		return "0 B"
	}
	unit := 1024.0
	suffixes := []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if siUnit {
		unit = 1000
		suffixes = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}
	}
	i := math.Floor(math.Log(float64(bytes)) / math.Log(unit))
	val := float64(bytes) / math.Pow(unit, i)
	return fmt.Sprintf("%.2f %s", val, suffixes[int(i)])
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"cv-ai-go/internal/config"
	appCoreLogger "cv-ai-go/internal/logger"
	"cv-ai-go/internal/parser"

	"github.com/spf13/pflag"
)

// 命令行参数定义
var (
	filePath   = pflag.StringP("file", "f", "", "PDF/DOCX简历文件路径 (必填)")
	command    = pflag.String("cmd", "parse", "执行的命令: extract=仅提取文本, sections=章节边界, parse=完整解析并输出JSON")
	configPath = pflag.StringP("config", "c", "", "配置文件路径, 为空时使用默认搜索路径")
	engine     = pflag.String("engine", "", "覆盖 parser.pdf_engine: eino | ledongthuc | tika")
	maxLen     = pflag.Int("maxlen", -1, "extract 命令显示的最大字符数，-1显示全部")
	verbose    = pflag.BoolP("verbose", "v", false, "输出提取器调试日志")
)

func main() {
	pflag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "错误: 必须提供简历文件路径。使用 -file 参数。")
		pflag.Usage()
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	if *engine != "" {
		cfg.Parser.PDFEngine = *engine
	}

	absPath, err := filepath.Abs(*filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法获取文件的绝对路径: %v\n", err)
		os.Exit(1)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法读取文件 %s: %v\n", absPath, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Parser.ParseTimeout, 30*time.Second))
	defer cancel()

	logger := appCoreLogger.NewStdLogger("[cvparser] ", *verbose)
	extractor, err := parser.NewTextExtractorFromConfig(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "创建文本提取器失败: %v\n", err)
		os.Exit(1)
	}

	switch *command {
	case "extract":
		err = handleExtract(ctx, extractor, data, absPath)
	case "sections":
		err = handleSections(ctx, extractor, data, absPath)
	case "parse":
		err = handleParse(ctx, extractor, data, absPath)
	default:
		err = fmt.Errorf("未知命令 '%s'。支持的命令: extract, sections, parse", *command)
		pflag.Usage()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if *configPath == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(*configPath)
}

func handleExtract(ctx context.Context, extractor parser.TextExtractor, data []byte, path string) error {
	start := time.Now()
	text, err := extractor.ExtractText(ctx, data, path)
	if err != nil {
		return fmt.Errorf("提取文本失败: %w", err)
	}

	displayText := text
	if runes := []rune(text); *maxLen >= 0 && len(runes) > *maxLen {
		displayText = string(runes[:*maxLen]) + "..."
	}
	fmt.Printf("===== 提取的文本 (总计 %d 字符, 耗时 %v) =====\n", len([]rune(text)), time.Since(start))
	fmt.Println(displayText)
	return nil
}

func handleSections(ctx context.Context, extractor parser.TextExtractor, data []byte, path string) error {
	text, err := extractor.ExtractText(ctx, data, path)
	if err != nil {
		return fmt.Errorf("提取文本失败: %w", err)
	}

	boundaries := parser.FindSectionBoundaries(text)
	if len(boundaries) == 0 {
		fmt.Println("未检测到任何章节标题")
		return nil
	}

	type boundary struct {
		section string
		line    int
	}
	ordered := make([]boundary, 0, len(boundaries))
	for section, line := range boundaries {
		ordered = append(ordered, boundary{section: string(section), line: line})
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].line < ordered[j].line })

	fmt.Printf("检测到 %d 个章节:\n", len(ordered))
	for _, b := range ordered {
		fmt.Printf("  第 %3d 行  %s\n", b.line, b.section)
	}
	return nil
}

func handleParse(ctx context.Context, extractor parser.TextExtractor, data []byte, path string) error {
	p, err := parser.NewParser(extractor)
	if err != nil {
		return err
	}
	resp := p.ParseCV(ctx, data, filepath.Base(path))

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化结果失败: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

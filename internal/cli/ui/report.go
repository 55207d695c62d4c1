// Package ui 提供命令行输出的简洁布局
//
// 所有输出都写到构造时给定的 io.Writer，便于命令行与测试共用同一套渲染。
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
)

// Report 简洁布局的报告输出
type Report struct {
	w io.Writer
}

// NewReport 创建报告输出，w 为空时写到标准输出
func NewReport(w io.Writer) *Report {
	if w == nil {
		w = os.Stdout
	}
	return &Report{w: w}
}

// Writer 返回底层输出
func (r *Report) Writer() io.Writer {
	return r.w
}

// Section 显示分节标题
func (r *Report) Section(title string) {
	pterm.DefaultSection.WithWriter(r.w).Println(title)
}

// KeyValues 显示无表头的键值表格
func (r *Report) KeyValues(rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	return pterm.DefaultTable.WithHasHeader(false).WithWriter(r.w).WithData(rows).Render()
}

// Table 显示带表头的表格，没有数据行时只输出提示
func (r *Report) Table(header []string, rows [][]string) error {
	if len(rows) == 0 {
		r.Info("(空)")
		return nil
	}
	data := make([][]string, 0, len(rows)+1)
	data = append(data, header)
	data = append(data, rows...)
	return pterm.DefaultTable.WithHasHeader(true).WithWriter(r.w).WithData(data).Render()
}

// Success 显示成功消息
func (r *Report) Success(format string, args ...interface{}) {
	pterm.Success.WithWriter(r.w).Println(fmt.Sprintf(format, args...))
}

// Info 显示提示消息
func (r *Report) Info(format string, args ...interface{}) {
	pterm.Info.WithWriter(r.w).Println(fmt.Sprintf(format, args...))
}

// Warning 显示警告消息
func (r *Report) Warning(format string, args ...interface{}) {
	pterm.Warning.WithWriter(r.w).Println(fmt.Sprintf(format, args...))
}

// Error 显示错误消息
func (r *Report) Error(format string, args ...interface{}) {
	pterm.Error.WithWriter(r.w).Println(fmt.Sprintf(format, args...))
}

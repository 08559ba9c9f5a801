package pdfconv

// Package pdfconv wraps the PDF libraries used by the actions: MuPDF (via
// github.com/gen2brain/go-fitz) rasterizes pages to PNG, and pdfcpu builds PDFs
// from images and encrypts existing documents with a password.

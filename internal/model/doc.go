package model

// Package model defines domain data structures used across the app: conversion
// jobs, their status enum, and the value types of the passport-photo action
// (print sizes and crop rectangles). Structures are plain values so the UI can
// render them directly.

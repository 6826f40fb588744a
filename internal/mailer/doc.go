// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package mailer renders and delivers the transactional emails of
// fast-home.
//
// Three transports implement [Mailer]: direct SMTP delivery with gomail,
// publishing JSON jobs to a RabbitMQ queue, and a transactional email HTTP
// API called with resty. [Consumer] is the other end of the queue: it
// decodes jobs and hands them to an SMTP mailer.
package mailer
